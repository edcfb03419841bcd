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

package lcarun

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/odyssey-lca/odyssey/labeled"
	"github.com/odyssey-lca/odyssey/lcia"
)

// characterizationMethod is the only method named in the current
// enumeration; a second method would be selected by CLI flag in a future
// revision.
const characterizationMethod = "ef31"

// Totals is the grand-total impact vector across every database touched
// by a run, plus the per-database breakdown sorted by database name.
type Totals struct {
	PerDatabase []DatabaseImpact
	Grand       *labeled.Vector[string]
}

// DatabaseImpact is one database's contribution to a run.
type DatabaseImpact struct {
	Database string
	Impact   *labeled.Vector[string]
}

// Run resolves path's activity file, computes lci/lcia/lca for every
// database it touches, and accumulates one grand-total impact vector.
func Run(path string, loader DatabaseLoader, searcher Searcher) (*Totals, error) {
	databases, rfs, err := Resolve(path, loader, searcher)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rfs))
	for name := range rfs {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := labeled.NewMapBuilder[string]()
	for _, c := range lcia.ImpactCategories {
		categories.Add(c)
	}
	grand := labeled.NewVector(categories.Build())

	totals := &Totals{PerDatabase: make([]DatabaseImpact, 0, len(names))}
	for _, name := range names {
		db := databases[name]
		h, err := db.Lca(rfs[name], characterizationMethod)
		if err != nil {
			return nil, fmt.Errorf("lcarun: %s: %w", name, err)
		}
		logrus.WithField("database", name).Debug("lcarun: computed lca")
		totals.PerDatabase = append(totals.PerDatabase, DatabaseImpact{Database: name, Impact: h})
		if err := grand.AddInPlace(h); err != nil {
			return nil, fmt.Errorf("lcarun: accumulating %s into grand total: %w", name, err)
		}
	}
	totals.Grand = grand
	return totals, nil
}

// WriteCSV prints one line per database per impact category, followed by
// a grand-total line per category.
func WriteCSV(w io.Writer, t *Totals) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"database", "impact_category", "value"}); err != nil {
		return err
	}
	for _, di := range t.PerDatabase {
		for i := 0; i < di.Impact.Mapping.Len(); i++ {
			row := []string{di.Database, di.Impact.Mapping.Label(i), fmt.Sprintf("%g", di.Impact.Values[i])}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	for i := 0; i < t.Grand.Mapping.Len(); i++ {
		row := []string{"TOTAL", t.Grand.Mapping.Label(i), fmt.Sprintf("%g", t.Grand.Values[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
