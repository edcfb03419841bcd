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
	"math"
	"os"
	"path/filepath"
	"testing"
)

const tolerance = 1e-10

func different(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	if b == 0 {
		return math.Abs(a) > tolerance
	}
	return math.Abs((a-b)/b) > tolerance
}

// buildA builds an invertible 5x5 technology-style matrix: identity minus
// technology coefficients. It is not diagonally dominant (entry (2,1) is
// -10), so the LU factorization has to pivot.
func buildA(t *testing.T) *Matrix {
	t.Helper()
	coo := NewCOO(5, 5)
	triplets := [][3]float64{
		{0, 0, 1}, {1, 1, 1}, {2, 2, 1}, {3, 3, 1}, {4, 4, 1},
		{1, 0, -0.02}, {2, 1, -10}, {2, 0, -0.2},
		{3, 2, -2}, {3, 1, -1}, {4, 3, -2.5}, {4, 2, -1},
		{0, 4, -0.1}, {1, 4, -0.01},
	}
	for _, tr := range triplets {
		coo.Add(int32(tr[0]), int32(tr[1]), tr[2])
	}
	return coo.ToCSC()
}

// TestSolveInvertsDot checks testable property 1: A*(A.solve(f)) == f.
func TestSolveInvertsDot(t *testing.T) {
	a := buildA(t)
	f, err := Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	rhs := []float64{50, 0, 0, 0, 0}
	s, err := f.Solve(rhs)
	if err != nil {
		t.Fatal(err)
	}
	check, err := a.Dot(s)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rhs {
		if math.Abs(check[i]-rhs[i]) > 1e-8 {
			t.Errorf("A*s[%d] = %v, want %v", i, check[i], rhs[i])
		}
	}
}

// TestDotMatchesDenseProduct checks testable property 2: Dot agrees with a
// hand-computed dense product.
func TestDotMatchesDenseProduct(t *testing.T) {
	coo := NewCOO(3, 5)
	coo.Add(0, 0, 0.41111)
	coo.Add(1, 0, -0.03)
	coo.Add(2, 2, -6.0)
	coo.Add(2, 3, 0.02)
	b := coo.ToCSC()
	s := []float64{50, 1, 10, 21.111, 51.111}

	dense := make([][]float64, 3)
	for i := range dense {
		dense[i] = make([]float64, 5)
	}
	dense[0][0] = 0.41111
	dense[1][0] = -0.03
	dense[2][2] = -6.0
	dense[2][3] = 0.02
	want := make([]float64, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			want[i] += dense[i][j] * s[j]
		}
	}

	g, err := b.Dot(s)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if math.Abs(g[i]-want[i]) > 1e-12 {
			t.Errorf("g[%d] = %v, want %v", i, g[i], want[i])
		}
	}
}

func TestBuilderDuplicatesSum(t *testing.T) {
	coo := NewCOO(2, 2)
	coo.Add(0, 0, 3)
	coo.Add(0, 0, 4)
	m := coo.ToCSC()
	if m.NZ() != 1 {
		t.Fatalf("expected 1 coalesced entry, got %d", m.NZ())
	}
	if m.X[0] != 7 {
		t.Fatalf("expected summed value 7, got %v", m.X[0])
	}
}

func TestBuilderDeterminism(t *testing.T) {
	triplets := [][3]float64{{1, 0, 1}, {0, 1, 2}, {1, 1, 3}, {0, 0, 4}}
	build := func() *Matrix {
		coo := NewCOO(2, 2)
		for _, tr := range triplets {
			coo.Add(int32(tr[0]), int32(tr[1]), tr[2])
		}
		return coo.ToCSC()
	}
	a, b := build(), build()
	if len(a.P) != len(b.P) || len(a.I) != len(b.I) {
		t.Fatal("shape mismatch between two builds of the same stream")
	}
	for i := range a.P {
		if a.P[i] != b.P[i] {
			t.Fatalf("P differs at %d: %d vs %d", i, a.P[i], b.P[i])
		}
	}
	for i := range a.I {
		if a.I[i] != b.I[i] || different(a.X[i], b.X[i]) {
			t.Fatalf("entry %d differs", i)
		}
	}
}

func TestFactorRoundTrip(t *testing.T) {
	a := buildA(t)
	f, err := Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	rhs := []float64{50, 0, 0, 0, 0}
	before, err := f.Solve(rhs)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "a.umf")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFactor(path)
	if err != nil {
		t.Fatal(err)
	}
	after, err := loaded.Solve(rhs)
	if err != nil {
		t.Fatal(err)
	}
	for i := range before {
		if math.Abs(before[i]-after[i]) > 1e-8 {
			t.Errorf("solve[%d] changed across round-trip: %v vs %v", i, before[i], after[i])
		}
	}
}

func TestSolveShapeMismatch(t *testing.T) {
	a := buildA(t)
	f, err := Factorize(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Solve([]float64{1, 2}); err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestMatMulIdentity(t *testing.T) {
	a := buildA(t)
	ident := NewCOO(5, 5)
	for i := 0; i < 5; i++ {
		ident.Add(int32(i), int32(i), 1)
	}
	c, err := a.MatMul(ident.ToCSC())
	if err != nil {
		t.Fatal(err)
	}
	if c.NZ() != a.NZ() {
		t.Fatalf("A*I should preserve nonzero count, got %d want %d", c.NZ(), a.NZ())
	}
}
