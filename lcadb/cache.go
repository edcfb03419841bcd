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
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/odyssey-lca/odyssey/ecospold"
	"github.com/odyssey-lca/odyssey/labeled"
)

// CacheFormatVersion is bumped whenever the on-disk shape of cacheFile
// changes; a mismatched version invalidates the cache.
const CacheFormatVersion = 1

// ErrCacheFormatVersion is returned by LoadCache when a cache file was
// written by an incompatible format version.
var ErrCacheFormatVersion = fmt.Errorf("lcadb: cache format version mismatch")

type cacheFile struct {
	FormatVersion int
	Kind          string
	Version       string
	A             *labeled.Matrix[string]
	B             *labeled.Matrix[string]
	CMethods      map[string]*labeled.Matrix[string]
	Candidates    []ecospold.InventoryItem
}

// FactorPath returns the sidecar path for a cache file's numeric factor.
func FactorPath(cachePath string) string { return cachePath + ".umf" }

// SaveCache writes d's binary cache to path and, if A carries a factor,
// its numeric factor to the ".umf" sidecar alongside it.
func SaveCache(d *Database, path string) error {
	cf := cacheFile{
		FormatVersion: CacheFormatVersion,
		Kind:          d.Kind,
		Version:       d.Version,
		A:             d.A,
		B:             d.B,
		CMethods:      d.CMethods,
		Candidates:    d.Candidates,
	}
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(cf); err != nil {
		return fmt.Errorf("lcadb: encoding cache: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lcadb: writing cache %s: %w", path, err)
	}
	if d.A.Factor != nil {
		if err := d.A.SaveNumeric(FactorPath(path)); err != nil {
			return fmt.Errorf("lcadb: saving numeric factor: %w", err)
		}
	}
	return nil
}

// LoadCache reads a binary cache written by SaveCache and, if the ".umf"
// sidecar exists, reattaches A's numeric factor without re-factoring.
func LoadCache(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lcadb: reading cache %s: %w", path, err)
	}
	var cf cacheFile
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&cf); err != nil {
		return nil, fmt.Errorf("lcadb: decoding cache %s: %w", path, err)
	}
	if cf.FormatVersion != CacheFormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCacheFormatVersion, cf.FormatVersion, CacheFormatVersion)
	}
	d := &Database{
		Kind:       cf.Kind,
		Version:    cf.Version,
		A:          cf.A,
		B:          cf.B,
		CMethods:   cf.CMethods,
		Candidates: cf.Candidates,
	}
	factorPath := FactorPath(path)
	if _, err := os.Stat(factorPath); err == nil {
		if err := d.A.LoadNumeric(factorPath); err != nil {
			return nil, fmt.Errorf("lcadb: loading numeric factor: %w", err)
		}
	}
	return d, nil
}
