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

// Package lcia builds the EF v3.1 characterization matrix C from a mapped
// CSV file, characterizing elementary flows into impact-category scores.
package lcia

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/odyssey-lca/odyssey/labeled"
)

// ImpactCategories is the fixed EF v3.1 impact-category enumeration. Its
// order is the dense row order of every characterization matrix this
// package builds, and is stable across builds and releases.
var ImpactCategories = []string{
	"Climate change",
	"Climate change, fossil",
	"Climate change, biogenic",
	"Climate change, land use and land use change",
	"Ozone depletion",
	"Human toxicity, cancer",
	"Human toxicity, cancer, organic",
	"Human toxicity, cancer, inorganic",
	"Human toxicity, cancer, metals",
	"Human toxicity, non-cancer",
	"Human toxicity, non-cancer, organic",
	"Human toxicity, non-cancer, inorganic",
	"Human toxicity, non-cancer, metals",
	"Particulate matter",
	"Ionising radiation, human health",
	"Photochemical ozone formation, human health",
	"Acidification",
	"Eutrophication, terrestrial",
	"Eutrophication, freshwater",
	"Eutrophication, marine",
	"Ecotoxicity, freshwater",
	"Land use",
	"Water use",
	"Resource use, fossils",
	"Resource use, minerals and metals",
}

const idColumn = "elementary_flow_id"

// BuildCharacterization reads a CSV file with an elementary_flow_id column
// plus one column per EF v3.1 indicator, and returns a labeled matrix
// C : ImpactCategory x elementaryFlowID. Columns are seeded from
// elementaryFlowRows (B's row labels) so C's column space matches B's row
// space exactly, including elementary flows absent from the CSV (a CSV row
// whose id is not in elementaryFlowRows is skipped, per spec).
func BuildCharacterization(csvPath string, elementaryFlowRows *labeled.BiMap[string]) (*labeled.Matrix[string], error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("lcia: opening %s: %w", csvPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("lcia: reading header of %s: %w", csvPath, err)
	}
	idIdx := -1
	catCol := make(map[int]string)
	for i, h := range header {
		if h == idColumn {
			idIdx = i
			continue
		}
		for _, cat := range ImpactCategories {
			if h == cat {
				catCol[i] = cat
				break
			}
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("lcia: %s has no %s column", csvPath, idColumn)
	}

	b := labeled.NewBuilder[string]()
	for _, cat := range ImpactCategories {
		b.SeedRow(cat)
	}
	for i := 0; i < elementaryFlowRows.Len(); i++ {
		b.SeedCol(elementaryFlowRows.Label(i))
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lcia: reading %s: %w", csvPath, err)
		}
		id := row[idIdx]
		if !elementaryFlowRows.Contains(id) {
			continue
		}
		for i, cat := range catCol {
			if i >= len(row) {
				continue
			}
			cell := row[i]
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("lcia: parsing %s column %q for %s: %w", csvPath, cat, id, err)
			}
			b.AddTriplet(cat, id, v)
		}
	}

	return b.Build(false)
}
