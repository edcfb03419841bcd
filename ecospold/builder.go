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

package ecospold

import (
	"sort"

	"github.com/odyssey-lca/odyssey/labeled"
)

// BuildAB assembles the square technology matrix A and the rectangular
// intervention matrix B from a parsed process map, per the FIFO topology
// walk: starting from a deterministic (sorted) seed order, each activity
// popped from the queue enqueues the activities its inputs still link to,
// so the walk follows the dependency graph outward from wherever it
// starts rather than requiring a topological pre-sort.
func BuildAB(processes map[string]*Process) (a, b *labeled.Matrix[string], err error) {
	remaining := make(map[string]*Process, len(processes))
	for id, p := range processes {
		remaining[id] = p
	}

	seedOrder := make([]string, 0, len(remaining))
	for id := range remaining {
		seedOrder = append(seedOrder, id)
	}
	sort.Strings(seedOrder)
	seedIdx := 0

	aBuilder := labeled.NewBuilder[string]()
	bBuilder := labeled.NewBuilder[string]()

	var fifo []string
	visited := make(map[string]bool, len(processes))

	nextSeed := func() (string, bool) {
		for seedIdx < len(seedOrder) {
			id := seedOrder[seedIdx]
			seedIdx++
			if !visited[id] {
				return id, true
			}
		}
		return "", false
	}

	for len(remaining) > 0 {
		var colID string
		if len(fifo) > 0 {
			colID, fifo = fifo[0], fifo[1:]
		} else {
			id, ok := nextSeed()
			if !ok {
				break
			}
			colID = id
		}
		if visited[colID] {
			continue
		}
		visited[colID] = true

		aBuilder.SeedRow(colID)
		aBuilder.SeedCol(colID)
		bBuilder.SeedCol(colID)

		proc, ok := remaining[colID]
		if !ok {
			// Seeds come from the process map and only ids still pending
			// are enqueued, so every id popped here has a process. If one
			// did not, its column would be left empty.
			continue
		}
		delete(remaining, colID)

		for _, ex := range proc.IntermediateExchanges {
			rowID := colID
			if ex.ProcessID != "" {
				rowID = ex.ProcessID + "_" + ex.ProductID
			}
			if _, stillPending := remaining[rowID]; stillPending && ex.Amount != 0 && !visited[rowID] {
				fifo = append(fifo, rowID)
			}
			sign := 1.0
			if ex.IsInput() {
				sign = -1.0
			}
			aBuilder.AddTriplet(rowID, colID, sign*ex.Amount)
		}
		for _, ex := range proc.ElementaryExchanges {
			if ex.Amount == 0 {
				continue
			}
			bBuilder.AddTriplet(ex.ProductID, colID, ex.Amount)
		}
	}

	a, err = aBuilder.Build(true)
	if err != nil {
		return nil, nil, err
	}
	b, err = bBuilder.Build(false)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
