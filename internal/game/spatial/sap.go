package spatial

import (
	"sort"
)

// SweepAndPrune is the second broad-phase pass for shell-vs-tank collision,
// run alongside the hash grid and intersected with it before the narrow
// AABB/anti-tunneling test. The grid's candidates are whole cells, so they
// include entities a cell away; SAP sweeps a sorted list of interval
// endpoints on the X axis and keeps only pairs whose X intervals overlap.
// Since the two sets are intersected, SAP can only narrow the grid's set.
//
// Endpoints are rebuilt from the caller's slice order on every call; nothing
// is carried over between calls, so insertion sort costs O(n) only when that
// input already arrives nearly sorted by X, and up to O(n²) otherwise.
//
// Origin: Baraff & Witkin (SIGGRAPH 1992); Bullet Physics (2003)
type SweepAndPrune struct {
	endpoints  []SAPEndpoint   // all min/max endpoints for this sweep
	pairs      []CollisionPair // output buffer, reused across calls
	active     []uint32        // active interval set, reused across calls
	useInsSort bool            // insertion sort instead of sort.Slice
}

// SAPEndpoint represents one end of a bounding interval on the sweep axis.
type SAPEndpoint struct {
	Value    float32 // X coordinate
	EntityID uint32  // index into the caller's combined shell+tank slice
	IsMin    bool    // true = start of interval, false = end
}

// CollisionPair is two entity indices (into the caller's combined
// shell+tank slice) whose X-axis intervals overlap.
type CollisionPair struct {
	A, B uint32
}

// NewSweepAndPrune creates a new sweep-and-prune broad phase.
// maxEntities sizes the preallocated endpoint/pair/active buffers.
func NewSweepAndPrune(maxEntities int) *SweepAndPrune {
	return &SweepAndPrune{
		endpoints:  make([]SAPEndpoint, 0, maxEntities*2),
		pairs:      make([]CollisionPair, 0, maxEntities),
		active:     make([]uint32, 0, maxEntities/4),
		useInsSort: true,
	}
}

// UpdateFromSlice rebuilds endpoints from a combined slice of positions
// (shells first, then tanks, per collision.go's buildShellTankSAP) and a
// uniform search radius, then returns every pair of overlapping intervals.
//
// The returned slice is reused on the next call; callers must copy or
// consume it before calling UpdateFromSlice again.
func (s *SweepAndPrune) UpdateFromSlice(positions [][2]float32, radius float32) []CollisionPair {
	s.pairs = s.pairs[:0]
	s.endpoints = s.endpoints[:0]

	for i, pos := range positions {
		x := pos[0]
		s.endpoints = append(s.endpoints,
			SAPEndpoint{x - radius, uint32(i), true},
			SAPEndpoint{x + radius, uint32(i), false},
		)
	}

	if s.useInsSort && len(s.endpoints) > 1 {
		insertionSortEndpoints(s.endpoints)
	} else {
		sort.Slice(s.endpoints, func(i, j int) bool {
			return s.endpoints[i].Value < s.endpoints[j].Value
		})
	}

	s.active = s.active[:0]

	for _, ep := range s.endpoints {
		if ep.IsMin {
			for _, other := range s.active {
				s.pairs = append(s.pairs, CollisionPair{ep.EntityID, other})
			}
			s.active = append(s.active, ep.EntityID)
		} else {
			for i, id := range s.active {
				if id == ep.EntityID {
					s.active[i] = s.active[len(s.active)-1]
					s.active = s.active[:len(s.active)-1]
					break
				}
			}
		}
	}

	return s.pairs
}

// SetInsertionSort enables/disables the insertion-sort optimization.
// When true (default), uses insertion sort, which is O(n) when the
// endpoints arrive nearly sorted and O(n²) in the worst case.
// When false, uses Go's standard sort, which is O(n log n) regardless.
func (s *SweepAndPrune) SetInsertionSort(enabled bool) {
	s.useInsSort = enabled
}

// insertionSortEndpoints sorts endpoints in place.
// O(n) for nearly-sorted input, O(n²) in the worst case.
func insertionSortEndpoints(eps []SAPEndpoint) {
	for i := 1; i < len(eps); i++ {
		key := eps[i]
		j := i - 1
		for j >= 0 && eps[j].Value > key.Value {
			eps[j+1] = eps[j]
			j--
		}
		eps[j+1] = key
	}
}
