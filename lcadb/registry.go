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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// IndexDeleter is the capability Remove needs from the search layer,
// narrowed to avoid a direct dependency on package search.
type IndexDeleter interface {
	DeleteDatabase(name string) error
}

// Entry is one manifest record.
type Entry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// Manifest is the registration list of every imported database, persisted
// as databases/databases.json.
type Manifest struct {
	Entries []Entry `json:"entries"`
}

// LoadManifest reads a manifest file, returning an empty manifest if it
// does not yet exist.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lcadb: reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("lcadb: parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest back to path.
func (m *Manifest) Save(path string) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("lcadb: encoding manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("lcadb: creating manifest dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("lcadb: writing manifest %s: %w", path, err)
	}
	return nil
}

// Find returns the entry for name/version, if registered.
func (m *Manifest) Find(name, version string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Name == name && e.Version == version {
			return e, true
		}
	}
	return Entry{}, false
}

// Register records an imported database, canonicalizing sourcePath.
// Import of an already-registered (name, version) is a soft no-op: it
// leaves the manifest with exactly one entry for that key.
func (m *Manifest) Register(name, version, sourcePath string) (added bool, err error) {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return false, fmt.Errorf("lcadb: canonicalizing %s: %w", sourcePath, err)
	}
	if _, ok := m.Find(name, version); ok {
		logrus.WithFields(logrus.Fields{"name": name, "version": version}).
			Info("lcadb: database already imported, skipping")
		return false, nil
	}
	m.Entries = append(m.Entries, Entry{Name: name, Version: version, Path: abs})
	return true, nil
}

// Remove deletes the manifest entry, the binary cache file, its numeric
// factor sidecar, and the search index's documents for name/version. If
// the entry is absent, Remove is a no-op with a logged note.
func (m *Manifest) Remove(name, version, cachePath string, idx IndexDeleter) (removed bool, err error) {
	entry, ok := m.Find(name, version)
	if !ok {
		logrus.WithFields(logrus.Fields{"name": name, "version": version}).
			Warn("lcadb: remove requested for a database that is not registered")
		return false, nil
	}

	dbName := entry.Name + "_" + entry.Version
	if idx != nil {
		if err := idx.DeleteDatabase(dbName); err != nil {
			return false, fmt.Errorf("lcadb: removing search documents for %s: %w", dbName, err)
		}
	}
	for _, p := range []string{cachePath, FactorPath(cachePath)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("lcadb: removing %s: %w", p, err)
		}
	}

	out := m.Entries[:0]
	for _, e := range m.Entries {
		if e.Name == name && e.Version == version {
			continue
		}
		out = append(out, e)
	}
	m.Entries = out
	return true, nil
}
