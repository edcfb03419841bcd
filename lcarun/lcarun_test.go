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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/odyssey-lca/odyssey/labeled"
	"github.com/odyssey-lca/odyssey/lcadb"
	"github.com/odyssey-lca/odyssey/lcia"
	"github.com/odyssey-lca/odyssey/search"
)

// buildSyntheticDB mirrors the E3 scenario: activity x (row/col "x")
// produces its own reference product and emits 1 kg of CO2; C maps CO2 to
// the "Climate change" category with factor 1.
func buildSyntheticDB(t *testing.T) *lcadb.Database {
	t.Helper()

	ab := labeled.NewBuilder[string]()
	ab.AddTriplet("x", "x", 1)
	a, err := ab.Build(true)
	if err != nil {
		t.Fatal(err)
	}

	bb := labeled.NewBuilder[string]()
	bb.AddTriplet("CO2", "x", 1)
	b, err := bb.Build(false)
	if err != nil {
		t.Fatal(err)
	}

	cb := labeled.NewBuilder[string]()
	for _, cat := range lcia.ImpactCategories {
		cb.SeedRow(cat)
	}
	cb.AddTriplet("Climate change", "CO2", 1)
	c, err := cb.Build(false)
	if err != nil {
		t.Fatal(err)
	}

	return &lcadb.Database{
		Kind:     "Ecoinvent",
		Version:  "3.10",
		A:        a,
		B:        b,
		CMethods: map[string]*labeled.Matrix[string]{"ef31": c},
	}
}

type fakeLoader struct{ db *lcadb.Database }

func (f *fakeLoader) LoadDatabase(ref DatabaseRef) (*lcadb.Database, error) { return f.db, nil }

type fakeSearcher struct{ ids []string }

func (f *fakeSearcher) SearchForIDs(q search.Query) ([]string, error) { return f.ids, nil }

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSmoke(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "top.yaml", `
exchanges:
  - name: "x"
    database: {name: "Ecoinvent", version: "3.10"}
    amount: 1
`)

	loader := &fakeLoader{db: buildSyntheticDB(t)}
	searcher := &fakeSearcher{ids: []string{"x"}}

	totals, err := Run(path, loader, searcher)
	if err != nil {
		t.Fatal(err)
	}
	got, err := totals.Grand.Get("Climate change")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("Climate change = %v, want 1", got)
	}
}

func TestResolveRecursiveFileLink(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "sub.yaml", `
exchanges:
  - name: "x"
    database: {name: "Ecoinvent", version: "3.10"}
    amount: 3
`)
	top := writeYAML(t, dir, "top.yaml", `
exchanges:
  - file: "./sub.yaml"
    amount: 2
`)

	loader := &fakeLoader{db: buildSyntheticDB(t)}
	searcher := &fakeSearcher{ids: []string{"x"}}

	_, rfs, err := Resolve(top, loader, searcher)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := rfs["Ecoinvent_3.10"]
	if !ok {
		t.Fatal("expected Ecoinvent_3.10 to be resolved")
	}
	got, err := f.Get("x")
	if err != nil {
		t.Fatal(err)
	}
	if got != 6 {
		t.Fatalf("f[x] = %v, want 6 (2*3)", got)
	}
}

func TestResolveExchangeRequiresExactlyOneSource(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "bad.yaml", `
exchanges:
  - name: "x"
    amount: 1
`)
	_, err := LoadActivityFile(path)
	if !errors.Is(err, ErrInvalidExchange) {
		t.Fatalf("expected ErrInvalidExchange for an exchange with neither database nor file, got %v", err)
	}
}

func TestResolveAbortsOnAmbiguousSearch(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "top.yaml", `
exchanges:
  - name: "x"
    database: {name: "Ecoinvent", version: "3.10"}
    amount: 1
`)
	loader := &fakeLoader{db: buildSyntheticDB(t)}
	searcher := &fakeSearcher{ids: []string{"x1", "x2"}}

	if _, _, err := Resolve(path, loader, searcher); !errors.Is(err, ErrAmbiguousMatch) {
		t.Fatalf("expected ErrAmbiguousMatch when search returns more than one candidate, got %v", err)
	}
}

func TestResolveAbortsOnNoMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "top.yaml", `
exchanges:
  - name: "x"
    database: {name: "Ecoinvent", version: "3.10"}
    amount: 1
`)
	loader := &fakeLoader{db: buildSyntheticDB(t)}
	searcher := &fakeSearcher{ids: nil}

	if _, _, err := Resolve(path, loader, searcher); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch when search returns no candidates, got %v", err)
	}
}

func TestResolveDepthGuard(t *testing.T) {
	dir := t.TempDir()
	// a.yaml links to b.yaml, b.yaml links back to a.yaml: a cycle that
	// must be caught by the recursion depth guard rather than looping
	// forever.
	writeYAML(t, dir, "a.yaml", `
exchanges:
  - file: "./b.yaml"
    amount: 1
`)
	writeYAML(t, dir, "b.yaml", `
exchanges:
  - file: "./a.yaml"
    amount: 1
`)

	loader := &fakeLoader{db: buildSyntheticDB(t)}
	searcher := &fakeSearcher{ids: []string{"x"}}

	_, _, err := Resolve(filepath.Join(dir, "a.yaml"), loader, searcher)
	if err == nil {
		t.Fatal("expected the recursion depth guard to trip on a file cycle")
	}
}
