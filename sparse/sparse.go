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

// Package sparse implements a compressed-sparse-column matrix with triplet
// construction, cached-factor solves, and sparse matrix/vector and
// matrix/matrix products. It is the unlabeled engine underneath package
// labeled; nothing here knows about label types.
package sparse

import (
	"errors"
	"fmt"
	"sort"
)

// ErrShapeMismatch is returned when an operand's length does not match the
// matrix dimension it is being combined with.
var ErrShapeMismatch = errors.New("sparse: shape mismatch")

// ErrNotInvertible is returned by Solve when the matrix has no cached
// factor, and by Factor.Solve when the factor is singular.
var ErrNotInvertible = errors.New("sparse: matrix has no numeric factor")

// ErrNotSquare is returned when factorization is requested for a
// non-square matrix.
var ErrNotSquare = errors.New("sparse: matrix is not square")

// Matrix is an m-by-n matrix in compressed-sparse-column form. P has length
// n+1 and is non-decreasing with P[0]==0 and P[n]==len(X). Within column j,
// the row indices I[P[j]:P[j+1]] are strictly increasing. len(I)==len(X).
type Matrix struct {
	M, N int
	P    []int32
	I    []int32
	X    []float64
}

// NZ returns the number of stored (structural) entries.
func (a *Matrix) NZ() int { return len(a.X) }

// Dot computes w = A*v. It requires len(v) == a.N.
func (a *Matrix) Dot(v []float64) ([]float64, error) {
	if len(v) != a.N {
		return nil, fmt.Errorf("%w: A is %dx%d, v has length %d", ErrShapeMismatch, a.M, a.N, len(v))
	}
	w := make([]float64, a.M)
	for j := 0; j < a.N; j++ {
		vj := v[j]
		if vj == 0 {
			continue
		}
		for p := a.P[j]; p < a.P[j+1]; p++ {
			w[a.I[p]] += a.X[p] * vj
		}
	}
	return w, nil
}

// MatMul computes C = A*B using a column-by-column sparse accumulation: for
// each column of B, scatter-gather the linear combination of A's columns it
// names. The result carries no numeric factor.
func (a *Matrix) MatMul(b *Matrix) (*Matrix, error) {
	if a.N != b.M {
		return nil, fmt.Errorf("%w: A is %dx%d, B is %dx%d", ErrShapeMismatch, a.M, a.N, b.M, b.N)
	}
	coo := NewCOO(a.M, b.N)
	acc := make([]float64, a.M)
	touched := make([]int32, 0, a.M)
	for j := 0; j < b.N; j++ {
		for bp := b.P[j]; bp < b.P[j+1]; bp++ {
			k := b.I[bp]
			bkj := b.X[bp]
			for ap := a.P[k]; ap < a.P[k+1]; ap++ {
				i := a.I[ap]
				if acc[i] == 0 {
					touched = append(touched, i)
				}
				acc[i] += a.X[ap] * bkj
			}
		}
		for _, i := range touched {
			coo.Add(i, int32(j), acc[i])
			acc[i] = 0
		}
		touched = touched[:0]
	}
	return coo.ToCSC(), nil
}

// COO is a coordinate-form triplet store used to build a Matrix. Duplicate
// coordinates are summed when converted to CSC.
type COO struct {
	M, N int
	Row  []int32
	Col  []int32
	Data []float64
}

// NewCOO returns an empty triplet store for an m-by-n matrix.
func NewCOO(m, n int) *COO {
	return &COO{M: m, N: n}
}

// Add appends a triplet. Zero values are retained, not pruned, so that
// structural positions survive to the built matrix.
func (c *COO) Add(i, j int32, v float64) {
	c.Row = append(c.Row, i)
	c.Col = append(c.Col, j)
	c.Data = append(c.Data, v)
}

// ToCSC sorts the triplets within each column and coalesces duplicate
// coordinates by summing, producing a CSC Matrix.
func (c *COO) ToCSC() *Matrix {
	n := c.N
	colCounts := make([]int32, n+1)
	for _, j := range c.Col {
		colCounts[j+1]++
	}
	p := make([]int32, n+1)
	for j := 0; j < n; j++ {
		p[j+1] = p[j] + colCounts[j+1]
	}

	// Scatter triplets into column buckets (CSC without dedup yet).
	next := make([]int32, n)
	copy(next, p[:n])
	rowBucket := make([]int32, len(c.Row))
	valBucket := make([]float64, len(c.Row))
	for k := range c.Row {
		j := c.Col[k]
		dst := next[j]
		rowBucket[dst] = c.Row[k]
		valBucket[dst] = c.Data[k]
		next[j]++
	}

	// Sort each column's entries by row index, then coalesce duplicates.
	outI := make([]int32, 0, len(rowBucket))
	outX := make([]float64, 0, len(rowBucket))
	outP := make([]int32, n+1)
	for j := 0; j < n; j++ {
		start, end := p[j], p[j+1]
		idx := make([]int32, end-start)
		for k := range idx {
			idx[k] = int32(k)
		}
		rows := rowBucket[start:end]
		vals := valBucket[start:end]
		sort.Slice(idx, func(x, y int) bool { return rows[idx[x]] < rows[idx[y]] })

		var lastRow int32 = -1
		for _, k := range idx {
			r := rows[k]
			v := vals[k]
			if r == lastRow {
				outX[len(outX)-1] += v
				continue
			}
			outI = append(outI, r)
			outX = append(outX, v)
			lastRow = r
		}
		outP[j+1] = int32(len(outI))
	}

	return &Matrix{M: c.M, N: c.N, P: outP, I: outI, X: outX}
}
