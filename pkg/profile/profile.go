// Package profile generates synthetic load profiles for studies and tests.
package profile

import "math/rand"

// Uniform returns a load series of length periods drawn uniformly from
// [mean - spread/2, mean + spread/2].
func Uniform(rng *rand.Rand, periods int, mean, spread float64) []float64 {
	series := make([]float64, periods)
	for i := range series {
		series[i] = mean - spread/2 + spread*rng.Float64()
	}
	return series
}
