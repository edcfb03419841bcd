/*
Copyright © 2017 the InMAP authors.
Copyright © 2026 the Odyssey authors.
This file is part of Odyssey.

Odyssey is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Odyssey is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Odyssey.  If not, see <http://www.gnu.org/licenses/>.
*/

package labeled

import (
	"errors"
	"fmt"
)

// ErrLabelNotFound is returned by Set and Get when a label is absent from
// the vector's mapping. Odyssey takes the documented hard-error stance on
// this case rather than silently dropping the value.
var ErrLabelNotFound = errors.New("labeled: label not found in mapping")

// ErrMappingMismatch is returned by arithmetic between vectors whose
// mappings are neither pointer-equal nor value-equal.
var ErrMappingMismatch = errors.New("labeled: mapping mismatch")

// Vector pairs a shared label mapping with a dense value slice;
// len(Values) == Mapping.Len().
type Vector[L comparable] struct {
	Mapping *BiMap[L]
	Values  []float64
}

// NewVector returns a zero-valued vector over mapping.
func NewVector[L comparable](mapping *BiMap[L]) *Vector[L] {
	return &Vector[L]{Mapping: mapping, Values: make([]float64, mapping.Len())}
}

// Set adds v to the existing slot for label and returns the value that was
// there before the add. A label absent from the mapping is a hard error.
func (v *Vector[L]) Set(label L, val float64) (float64, error) {
	i, ok := v.Mapping.Index(label)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrLabelNotFound, label)
	}
	prev := v.Values[i]
	v.Values[i] += val
	return prev, nil
}

// Get returns the value at label.
func (v *Vector[L]) Get(label L) (float64, error) {
	i, ok := v.Mapping.Index(label)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrLabelNotFound, label)
	}
	return v.Values[i], nil
}

// Add returns a new vector holding the element-wise sum of v and other. It
// requires identical mappings (pointer-equal or value-equal).
func (v *Vector[L]) Add(other *Vector[L]) (*Vector[L], error) {
	if !v.Mapping.Equal(other.Mapping) {
		return nil, ErrMappingMismatch
	}
	out := &Vector[L]{Mapping: v.Mapping, Values: make([]float64, len(v.Values))}
	for i := range v.Values {
		out.Values[i] = v.Values[i] + other.Values[i]
	}
	return out, nil
}

// AddInPlace adds other into v in place, requiring identical mappings.
func (v *Vector[L]) AddInPlace(other *Vector[L]) error {
	if !v.Mapping.Equal(other.Mapping) {
		return ErrMappingMismatch
	}
	for i := range v.Values {
		v.Values[i] += other.Values[i]
	}
	return nil
}

// Diag returns a square labeled matrix whose nonzeros are exactly v's
// values on the diagonal, with both row and column mapping equal to v's
// mapping.
func (v *Vector[L]) Diag() *Matrix[L] {
	n := v.Mapping.Len()
	m := &Matrix[L]{
		RowLabels: v.Mapping,
		ColLabels: v.Mapping,
	}
	p := make([]int32, n+1)
	idx := make([]int32, n)
	for i := 0; i < n; i++ {
		p[i+1] = p[i] + 1
		idx[i] = int32(i)
	}
	m.setCs(n, n, p, idx, append([]float64(nil), v.Values...))
	return m
}
