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
	"math"
	"testing"
)

func TestBuilderAndSolve(t *testing.T) {
	b := NewBuilder[string]()
	b.AddTriplet("x", "x", 1)
	b.AddTriplet("y", "y", 1)
	b.AddTriplet("y", "x", -0.5)
	a, err := b.Build(true)
	if err != nil {
		t.Fatal(err)
	}
	f := a.ZerosLikeCols()
	if _, err := f.Set("x", 1); err != nil {
		t.Fatal(err)
	}
	s, err := a.Solve(f)
	if err != nil {
		t.Fatal(err)
	}
	sx, _ := s.Get("x")
	sy, _ := s.Get("y")
	if math.Abs(sx-1) > 1e-9 {
		t.Errorf("s[x] = %v, want 1", sx)
	}
	if math.Abs(sy-0.5) > 1e-9 {
		t.Errorf("s[y] = %v, want 0.5", sy)
	}
}

func TestZerosLikeSharesMapping(t *testing.T) {
	b := NewBuilder[string]()
	b.AddTriplet("a", "b", 1)
	m, err := b.Build(false)
	if err != nil {
		t.Fatal(err)
	}
	v := m.ZerosLikeRows()
	if !v.Mapping.Same(m.RowLabels) {
		t.Fatal("ZerosLikeRows must share the matrix's row mapping by reference")
	}
	if len(v.Values) != m.NRows() {
		t.Fatalf("len(v.Values) = %d, want %d", len(v.Values), m.NRows())
	}
}

func TestSetOnMissingLabelIsHardError(t *testing.T) {
	b := NewBuilder[string]()
	b.AddTriplet("a", "b", 1)
	m, _ := b.Build(false)
	v := m.ZerosLikeRows()
	if _, err := v.Set("nope", 1); err == nil {
		t.Fatal("expected ErrLabelNotFound")
	}
}

func TestDiag(t *testing.T) {
	b := NewBuilder[string]()
	b.AddTriplet("a", "a", 0) // seed labels via triplets
	b.AddTriplet("b", "b", 0)
	m, _ := b.Build(false)
	v := m.ZerosLikeRows()
	v.Set("a", 3)
	v.Set("b", 4)
	d := v.Diag()
	if d.NRows() != 2 || d.NCols() != 2 {
		t.Fatalf("diag shape = %dx%d, want 2x2", d.NRows(), d.NCols())
	}
	if !d.RowLabels.Same(v.Mapping) || !d.ColLabels.Same(v.Mapping) {
		t.Fatal("diag must share the vector's mapping for both row and column labels")
	}
}

func TestDuplicateTripletsSum(t *testing.T) {
	b := NewBuilder[string]()
	b.AddTriplet("a", "b", 2)
	b.AddTriplet("a", "b", 3)
	m, err := b.Build(false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Cs.NZ() != 1 {
		t.Fatalf("expected 1 coalesced entry, got %d", m.Cs.NZ())
	}
	if m.Cs.X[0] != 5 {
		t.Fatalf("expected summed value 5, got %v", m.Cs.X[0])
	}
}

func TestQuickMatMul(t *testing.T) {
	ab := NewBuilder[string]()
	ab.AddTriplet("a", "x", 2)
	a, _ := ab.Build(false)

	bb := NewBuilder[string]()
	bb.AddTriplet("x", "y", 3)
	bmat, _ := bb.Build(false)

	c, err := a.QuickMatMul(bmat)
	if err != nil {
		t.Fatal(err)
	}
	if c.Factor != nil {
		t.Fatal("matmul result must carry no factor")
	}
	v, err := c.Dot(c.ZerosLikeCols())
	if err != nil {
		t.Fatal(err)
	}
	_ = v
}

func TestAddRequiresMatchingMappings(t *testing.T) {
	b1 := NewBuilder[string]()
	b1.AddTriplet("a", "a", 1)
	m1, _ := b1.Build(false)

	b2 := NewBuilder[string]()
	b2.AddTriplet("zzz", "zzz", 1)
	m2, _ := b2.Build(false)

	v1 := m1.ZerosLikeRows()
	v2 := m2.ZerosLikeRows()
	if _, err := v1.Add(v2); err == nil {
		t.Fatal("expected ErrMappingMismatch for differing label spaces")
	}
}
