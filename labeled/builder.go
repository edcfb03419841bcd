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

import "github.com/odyssey-lca/odyssey/sparse"

// Builder accumulates (rowLabel, colLabel, value) triplets in any order,
// assigning each label the next dense index on first occurrence. Duplicate
// coordinates are summed on Build, never overwritten.
type Builder[L comparable] struct {
	rows *MapBuilder[L]
	cols *MapBuilder[L]
	coo  *sparse.COO
}

// NewBuilder returns an empty builder.
func NewBuilder[L comparable]() *Builder[L] {
	return &Builder[L]{
		rows: NewMapBuilder[L](),
		cols: NewMapBuilder[L](),
		coo:  sparse.NewCOO(0, 0),
	}
}

// SeedRow ensures label has a row index without adding a triplet, used to
// seed a matrix's row space ahead of adding values (e.g. the LCIA builder
// seeding C's rows with the impact categories).
func (b *Builder[L]) SeedRow(label L) int { return b.rows.Add(label) }

// SeedCol ensures label has a column index without adding a triplet.
func (b *Builder[L]) SeedCol(label L) int { return b.cols.Add(label) }

// AddTriplet adds value at (rowLabel, colLabel), assigning new dense
// indices to labels not yet seen. Zero values are retained.
func (b *Builder[L]) AddTriplet(rowLabel, colLabel L, value float64) {
	i := b.rows.Add(rowLabel)
	j := b.cols.Add(colLabel)
	b.coo.Add(int32(i), int32(j), value)
}

// Build flattens the accumulated triplets into a CSC Matrix, sums
// duplicate coordinates, and, if factorize is true and the result is
// square, factorizes it and retains the numeric factor.
func (b *Builder[L]) Build(factorize bool) (*Matrix[L], error) {
	rowMap := b.rows.Build()
	colMap := b.cols.Build()
	b.coo.M = rowMap.Len()
	b.coo.N = colMap.Len()
	cs := b.coo.ToCSC()

	m := &Matrix[L]{RowLabels: rowMap, ColLabels: colMap, Cs: cs}
	if factorize && cs.M == cs.N {
		if err := m.Factorize(); err != nil {
			return nil, err
		}
	}
	return m, nil
}
