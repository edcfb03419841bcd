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
	"fmt"

	"github.com/odyssey-lca/odyssey/sparse"
)

// Matrix is a labeled sparse matrix: a CSC Matrix plus row and column label
// maps, and, for a square matrix that has been factorized, a cached
// numeric Factor. Label maps are shared with any vector derived from this
// matrix via ZerosLikeRows/ZerosLikeCols and are never mutated after Build.
type Matrix[L comparable] struct {
	RowLabels *BiMap[L]
	ColLabels *BiMap[L]
	Cs        *sparse.Matrix
	Factor    *sparse.Factor
}

func (m *Matrix[L]) setCs(rows, cols int, p, i []int32, x []float64) {
	m.Cs = &sparse.Matrix{M: rows, N: cols, P: p, I: i, X: x}
}

// NRows returns the number of row labels.
func (m *Matrix[L]) NRows() int { return m.RowLabels.Len() }

// NCols returns the number of column labels.
func (m *Matrix[L]) NCols() int { return m.ColLabels.Len() }

// ContainsRow reports whether label has a row in this matrix.
func (m *Matrix[L]) ContainsRow(label L) bool { return m.RowLabels.Contains(label) }

// ContainsCol reports whether label has a column in this matrix.
func (m *Matrix[L]) ContainsCol(label L) bool { return m.ColLabels.Contains(label) }

// ZerosLikeRows returns a zero vector over this matrix's row mapping,
// sharing the mapping by reference.
func (m *Matrix[L]) ZerosLikeRows() *Vector[L] { return NewVector(m.RowLabels) }

// ZerosLikeCols returns a zero vector over this matrix's column mapping,
// sharing the mapping by reference.
func (m *Matrix[L]) ZerosLikeCols() *Vector[L] { return NewVector(m.ColLabels) }

// Solve returns s such that m*s == f, requiring a square matrix with a
// cached factor.
func (m *Matrix[L]) Solve(f *Vector[L]) (*Vector[L], error) {
	if m.Factor == nil {
		return nil, sparse.ErrNotInvertible
	}
	if !f.Mapping.Equal(m.ColLabels) {
		return nil, fmt.Errorf("%w: reference flow is not over this matrix's column space", ErrMappingMismatch)
	}
	x, err := m.Factor.Solve(f.Values)
	if err != nil {
		return nil, err
	}
	return &Vector[L]{Mapping: m.ColLabels, Values: x}, nil
}

// Dot computes w = m*v in CSC, requiring v to be mapped over m's column
// labels. The result is mapped over m's row labels.
func (m *Matrix[L]) Dot(v *Vector[L]) (*Vector[L], error) {
	if !v.Mapping.Equal(m.ColLabels) {
		return nil, fmt.Errorf("%w: vector is not over this matrix's column space", ErrMappingMismatch)
	}
	w, err := m.Cs.Dot(v.Values)
	if err != nil {
		return nil, err
	}
	return &Vector[L]{Mapping: m.RowLabels, Values: w}, nil
}

// QuickMatMul computes C = m*other, returning a new labeled matrix with m's
// row labels and other's column labels. The result carries no factor.
func (m *Matrix[L]) QuickMatMul(other *Matrix[L]) (*Matrix[L], error) {
	if !m.ColLabels.Equal(other.RowLabels) {
		return nil, fmt.Errorf("%w: inner dimensions do not share a label space", ErrMappingMismatch)
	}
	cs, err := m.Cs.MatMul(other.Cs)
	if err != nil {
		return nil, err
	}
	return &Matrix[L]{RowLabels: m.RowLabels, ColLabels: other.ColLabels, Cs: cs}, nil
}

// Factorize computes and caches the numeric factor for a square matrix.
func (m *Matrix[L]) Factorize() error {
	f, err := sparse.Factorize(m.Cs)
	if err != nil {
		return err
	}
	m.Factor = f
	return nil
}

// SaveNumeric serializes the cached factor to path.
func (m *Matrix[L]) SaveNumeric(path string) error {
	if m.Factor == nil {
		return sparse.ErrNotInvertible
	}
	return m.Factor.Save(path)
}

// LoadNumeric deserializes a factor from path and attaches it to m,
// skipping re-factorization.
func (m *Matrix[L]) LoadNumeric(path string) error {
	f, err := sparse.LoadFactor(path)
	if err != nil {
		return err
	}
	m.Factor = f
	return nil
}
