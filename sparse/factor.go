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

package sparse

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Factor is a cached numeric LU factorization of a square Matrix, standing
// in for the symbolic-analysis-plus-numeric-factorization handle that a
// real sparse solver (UMFPACK, CXSparse) would hold. It is built once by
// Factorize and reused by every subsequent Solve; it is never recomputed
// on its own.
//
// The factorization is carried out densely via gonum's mat.LU. This is the
// boundary the external sparse-linear-algebra library occupies in the
// original design: Odyssey only requires that Solve be O(n^2) on a cached
// factor rather than O(n^3) per call, which a dense LU satisfies for the
// matrix sizes this tool operates on.
type Factor struct {
	n   int
	l   *mat.Dense // unit lower triangular, n x n
	u   *mat.Dense // upper triangular, n x n
	piv []int      // sequential row-swap pivots, length n
}

// Factorize computes the LU factorization of a square Matrix.
func Factorize(a *Matrix) (*Factor, error) {
	if a.M != a.N {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, a.M, a.N)
	}
	dense := toDense(a)
	var lu mat.LU
	lu.Factorize(dense)

	n := a.N
	var lTri, uTri mat.TriDense
	lu.LTo(&lTri)
	lu.UTo(&uTri)
	l := mat.NewDense(n, n, nil)
	u := mat.NewDense(n, n, nil)
	l.Copy(&lTri)
	u.Copy(&uTri)

	piv := lu.Pivot(nil)
	pivCopy := make([]int, len(piv))
	copy(pivCopy, piv)

	return &Factor{n: n, l: l, u: u, piv: pivCopy}, nil
}

func toDense(a *Matrix) *mat.Dense {
	d := mat.NewDense(a.M, a.N, nil)
	for j := 0; j < a.N; j++ {
		for p := a.P[j]; p < a.P[j+1]; p++ {
			d.Set(int(a.I[p]), j, a.X[p])
		}
	}
	return d
}

// Solve returns x such that A*x == b, using the cached factor. It does not
// recompute the factorization.
func (f *Factor) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, fmt.Errorf("%w: factor is %dx%d, b has length %d", ErrShapeMismatch, f.n, f.n, len(b))
	}
	y := make([]float64, f.n)
	copy(y, b)
	for i, p := range f.piv {
		y[i], y[p] = y[p], y[i]
	}

	// Forward substitution: L is unit lower triangular.
	for i := 0; i < f.n; i++ {
		sum := y[i]
		for k := 0; k < i; k++ {
			sum -= f.l.At(i, k) * y[k]
		}
		y[i] = sum
	}

	// Back substitution: U is upper triangular.
	x := make([]float64, f.n)
	for i := f.n - 1; i >= 0; i-- {
		sum := y[i]
		for k := i + 1; k < f.n; k++ {
			sum -= f.u.At(i, k) * x[k]
		}
		diag := f.u.At(i, i)
		if diag == 0 {
			return nil, fmt.Errorf("%w: singular factor at row %d", ErrNotInvertible, i)
		}
		x[i] = sum / diag
	}
	return x, nil
}

type gobFactor struct {
	N   int
	L   mat.Dense
	U   mat.Dense
	Piv []int
}

// Save serializes the factor to path, the sidecar ".umf" file alongside a
// cached database.
func (f *Factor) Save(path string) error {
	buf := new(bytes.Buffer)
	gf := gobFactor{N: f.n, L: *f.l, U: *f.u, Piv: f.piv}
	if err := gob.NewEncoder(buf).Encode(gf); err != nil {
		return fmt.Errorf("sparse: encoding factor: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadFactor deserializes a factor previously written by Save, restoring it
// without re-factoring.
func LoadFactor(path string) (*Factor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sparse: reading factor: %w", err)
	}
	var gf gobFactor
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&gf); err != nil {
		return nil, fmt.Errorf("sparse: decoding factor: %w", err)
	}
	l := gf.L
	u := gf.U
	return &Factor{n: gf.N, l: &l, u: &u, piv: gf.Piv}, nil
}
