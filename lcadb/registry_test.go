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

package lcadb

import (
	"os"
	"path/filepath"
	"testing"
)

type fakeDeleter struct{ deleted []string }

func (f *fakeDeleter) DeleteDatabase(name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func TestRegisterIsIdempotent(t *testing.T) {
	m := &Manifest{}
	added, err := m.Register("ecoinvent", "3.8", "/data/ecoinvent-38")
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Fatal("first register should report added")
	}
	added, err = m.Register("ecoinvent", "3.8", "/data/ecoinvent-38")
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Fatal("re-registering the same (name, version) must be a no-op")
	}
	if len(m.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Entries))
	}
}

func TestManifestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "databases.json")

	m := &Manifest{}
	if _, err := m.Register("ecoinvent", "3.8", filepath.Join(dir, "source")); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Entries) != 1 || loaded.Entries[0].Name != "ecoinvent" {
		t.Fatalf("round trip mismatch: %+v", loaded.Entries)
	}
}

func TestLoadManifestMissingFileIsEmpty(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Entries) != 0 {
		t.Fatal("missing manifest should load as empty, not error")
	}
}

func TestRemoveDeletesCacheAndIndexDocs(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "ecoinvent_3.8.cache")
	factorPath := FactorPath(cachePath)
	if err := os.WriteFile(cachePath, []byte("cache"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(factorPath, []byte("factor"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := &Manifest{}
	if _, err := m.Register("ecoinvent", "3.8", dir); err != nil {
		t.Fatal(err)
	}
	del := &fakeDeleter{}
	removed, err := m.Remove("ecoinvent", "3.8", cachePath, del)
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal to report true")
	}
	if len(m.Entries) != 0 {
		t.Fatal("entry should be gone from the manifest")
	}
	if _, err := os.Stat(cachePath); !os.IsNotExist(err) {
		t.Fatal("cache file should be deleted")
	}
	if _, err := os.Stat(factorPath); !os.IsNotExist(err) {
		t.Fatal("factor sidecar should be deleted")
	}
	if len(del.deleted) != 1 || del.deleted[0] != "ecoinvent_3.8" {
		t.Fatalf("expected search index cleanup for ecoinvent_3.8, got %v", del.deleted)
	}
}

func TestRemoveAbsentEntryIsNoOp(t *testing.T) {
	m := &Manifest{}
	removed, err := m.Remove("nope", "1.0", "/tmp/whatever", nil)
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("removing an unregistered database must be a no-op, not an error")
	}
}
