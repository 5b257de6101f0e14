package model

import (
	"fmt"
	"sort"
)

// Arc identifies an undirected transmission corridor between two buses.
type Arc struct {
	A string
	B string
}

// Reversed returns the arc with its endpoints swapped.
func (a Arc) Reversed() Arc { return Arc{A: a.B, B: a.A} }

func (a Arc) String() string { return a.A + "-" + a.B }

// Line describes the electrical properties of a transmission arc.
// A nil PowerLim means the line is unconstrained. Z is the
// susceptance-like coupling coefficient of the DC flow model.
type Line struct {
	PowerLim *float64
	Z        float64
}

// Link ties a generating unit to the bus it feeds.
type Link struct {
	Bus  string
	Unit string
}

// Network is the static transmission topology: undirected arcs with limits
// and couplings, plus unit-to-bus links. Arcs keep insertion order so model
// construction stays deterministic.
type Network struct {
	System *System

	arcs  []Arc
	lines map[Arc]Line
	links map[Link]struct{}
	buses []string
}

// NewNetwork builds a network over the given system. Every unit of the
// system must be linked to exactly one bus.
func NewNetwork(system *System, lines map[Arc]Line, links []Link) (*Network, error) {
	n := &Network{
		System: system,
		lines:  make(map[Arc]Line, len(lines)),
		links:  make(map[Link]struct{}, len(links)),
	}
	busSet := make(map[string]struct{})
	// Map iteration order is random; sort arcs for a stable traversal order.
	for a, l := range lines {
		n.lines[a] = l
		n.arcs = append(n.arcs, a)
		busSet[a.A] = struct{}{}
		busSet[a.B] = struct{}{}
	}
	sort.Slice(n.arcs, func(i, j int) bool {
		if n.arcs[i].A != n.arcs[j].A {
			return n.arcs[i].A < n.arcs[j].A
		}
		return n.arcs[i].B < n.arcs[j].B
	})
	for b := range busSet {
		n.buses = append(n.buses, b)
	}
	sort.Strings(n.buses)

	feeds := make(map[string]int, system.Len())
	for _, l := range links {
		if _, ok := system.Unit(l.Unit); !ok {
			return nil, fmt.Errorf("link references unknown unit %q", l.Unit)
		}
		if _, ok := busSet[l.Bus]; !ok {
			return nil, fmt.Errorf("link references unknown bus %q", l.Bus)
		}
		n.links[l] = struct{}{}
		feeds[l.Unit]++
	}
	for _, u := range system.Units() {
		if feeds[u.Name] != 1 {
			return nil, fmt.Errorf("unit %s must feed exactly one bus, has %d links", u.Name, feeds[u.Name])
		}
	}
	return n, nil
}

// Buses returns the sorted union of all arc endpoints.
func (n *Network) Buses() []string { return n.buses }

// Arcs returns the transmission arcs in deterministic order.
func (n *Network) Arcs() []Arc { return n.arcs }

// Linked reports whether the given unit feeds the given bus.
func (n *Network) Linked(bus, unit string) bool {
	_, ok := n.links[Link{Bus: bus, Unit: unit}]
	return ok
}

func (n *Network) line(a, b string) (Line, bool) {
	if l, ok := n.lines[Arc{A: a, B: b}]; ok {
		return l, true
	}
	l, ok := n.lines[Arc{A: b, B: a}]
	return l, ok
}

// PowerLim returns the flow limit of the arc between a and b, trying both
// orientations. A missing line has no limit; this fallback is deliberate.
func (n *Network) PowerLim(a, b string) (float64, bool) {
	l, ok := n.line(a, b)
	if !ok || l.PowerLim == nil {
		return 0, false
	}
	return *l.PowerLim, true
}

// Z returns the coupling coefficient of the arc between a and b, trying both
// orientations. A missing line couples with the default Z of 1; this
// fallback is deliberate, not an error.
func (n *Network) Z(a, b string) float64 {
	l, ok := n.line(a, b)
	if !ok {
		return 1
	}
	return l.Z
}
