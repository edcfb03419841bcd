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

package lcia

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odyssey-lca/odyssey/labeled"
)

func TestBuildCharacterization(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ef31.csv")
	content := "elementary_flow_id,Climate change,Acidification\n" +
		"CO2,1,\n" +
		"SO2,0,0.5\n" +
		"unused-flow,9,9\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rows := labeled.NewMapBuilder[string]()
	rows.Add("CO2")
	rows.Add("SO2")
	bimap := rows.Build()

	c, err := BuildCharacterization(path, bimap)
	if err != nil {
		t.Fatal(err)
	}
	if c.NRows() != len(ImpactCategories) {
		t.Fatalf("C has %d rows, want %d (the fixed enumeration)", c.NRows(), len(ImpactCategories))
	}
	if c.NCols() != 2 {
		t.Fatalf("C has %d cols, want 2 (B's row labels)", c.NCols())
	}
	if c.Factor != nil {
		t.Fatal("C must carry no factor")
	}
	if label := c.RowLabels.Label(0); label != ImpactCategories[0] {
		t.Errorf("row 0 = %q, want %q (enumeration order)", label, ImpactCategories[0])
	}
	if _, ok := c.ColLabels.Index("unused-flow"); ok {
		t.Fatal("unused-flow is not in B's rows and must not appear in C")
	}
}
