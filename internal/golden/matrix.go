// Package golden generates and checks the reference submission scripts used
// as regression data: one filtered script per (environment, parameter set,
// operation) combination.
package golden

import (
	"iter"
	"maps"
	"slices"
)

// Params is one combination of submission parameters.
type Params map[string]any

// Matrix is the cartesian product of parameter axes. It is computed lazily
// and can be iterated any number of times.
type Matrix struct {
	keys   []string
	values [][]any
}

// Product builds the cartesian product of the given axes. Keys are iterated
// in sorted order; the last key varies fastest. An empty map yields a single
// empty combination, and an axis without values yields none.
func Product(axes map[string][]any) *Matrix {
	m := &Matrix{keys: slices.Sorted(maps.Keys(axes))}
	for _, k := range m.keys {
		m.values = append(m.values, axes[k])
	}
	return m
}

// Len returns the number of combinations.
func (m *Matrix) Len() int {
	n := 1
	for _, v := range m.values {
		n *= len(v)
	}
	return n
}

// All yields every combination. Each yielded Params is a fresh map.
func (m *Matrix) All() iter.Seq[Params] {
	return func(yield func(Params) bool) {
		if m.Len() == 0 {
			return
		}
		idx := make([]int, len(m.keys))
		for {
			p := make(Params, len(m.keys))
			for i, k := range m.keys {
				p[k] = m.values[i][idx[i]]
			}
			if !yield(p) {
				return
			}
			// odometer increment, last axis fastest
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(m.values[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}
