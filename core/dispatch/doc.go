// Package dispatch solves single-period economic dispatch: allocating a
// total load across a fleet of thermal units at minimum cost, ignoring
// commitment decisions.
//
// The LambdaIteration solver bisects on the system marginal price. At a
// given price every unit produces where its marginal cost meets the price,
// clipped to its operating range; the price then moves against the supply
// mismatch. Because marginal cost increases with power on convex cost
// curves, the mismatch is monotone in the price and bisection converges on
// any correctly bracketed interior solution.
//
// This is the fast path for unconstrained-network dispatch; it never builds
// an optimization model. Commitment, reserves and network constraints live
// in the uc package.
package dispatch
