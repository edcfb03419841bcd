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

package odysseyutil

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/odyssey-lca/odyssey/ecospold"
	"github.com/odyssey-lca/odyssey/labeled"
	"github.com/odyssey-lca/odyssey/lcadb"
	"github.com/odyssey-lca/odyssey/lcia"
	"github.com/odyssey-lca/odyssey/search"
)

// BuildEcoinvent parses an EcoSpold v2 source directory and builds A, B,
// the ef31 characterization matrix, and the candidate list, without
// touching the cache or the search index. Import (below) wraps this with
// persistence.
func BuildEcoinvent(dataDir, version, sourceDir string) (*lcadb.Database, error) {
	processes, err := ecospold.ParseDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("odysseyutil: parsing %s: %w", sourceDir, err)
	}
	a, b, err := ecospold.BuildAB(processes)
	if err != nil {
		return nil, fmt.Errorf("odysseyutil: building A/B: %w", err)
	}
	dbName := "Ecoinvent_" + version
	candidates, err := ecospold.Candidates(processes, dbName)
	if err != nil {
		return nil, fmt.Errorf("odysseyutil: building candidates: %w", err)
	}

	methodsCSV := filepath.Join(MethodsDir(dataDir), fmt.Sprintf("EF v3.1_mapped_%s.csv", version))
	c, err := lcia.BuildCharacterization(methodsCSV, b.RowLabels)
	if err != nil {
		return nil, fmt.Errorf("odysseyutil: building characterization matrix: %w", err)
	}

	return &lcadb.Database{
		Kind:       "Ecoinvent",
		Version:    version,
		A:          a,
		B:          b,
		CMethods:   map[string]*labeled.Matrix[string]{"ef31": c},
		Candidates: candidates,
	}, nil
}

// Import builds an Ecoinvent database from sourceDir, persists its binary
// cache and numeric factor, indexes its candidates, and registers it in
// the manifest. Re-importing the same (kind, version) leaves the manifest
// with one entry but still re-caches and re-indexes, since the source
// files on disk may have changed since the first import.
func Import(dataDir, version, sourceDir string, idx *search.Index) (*lcadb.Database, error) {
	if err := EnsureLayout(dataDir); err != nil {
		return nil, err
	}
	db, err := BuildEcoinvent(dataDir, version, sourceDir)
	if err != nil {
		return nil, err
	}

	cachePath := CachePath(dataDir, db.Kind, db.Version)
	if err := lcadb.SaveCache(db, cachePath); err != nil {
		return nil, fmt.Errorf("odysseyutil: caching %s: %w", db.Name(), err)
	}
	if err := idx.IndexDatabase(db.Name(), db.Candidates); err != nil {
		return nil, fmt.Errorf("odysseyutil: indexing %s: %w", db.Name(), err)
	}

	manifestPath := ManifestPath(dataDir)
	manifest, err := lcadb.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if _, err := manifest.Register(db.Kind, db.Version, sourceDir); err != nil {
		return nil, err
	}
	if err := manifest.Save(manifestPath); err != nil {
		return nil, err
	}

	logrus.WithField("database", db.Name()).Info("odysseyutil: imported database")
	return db, nil
}

// Remove deletes a database's manifest entry, cache files, and search
// index documents. A no-op (with a logged note) if the database is not
// registered.
func Remove(dataDir, kind, version string, idx *search.Index) error {
	manifestPath := ManifestPath(dataDir)
	manifest, err := lcadb.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	cachePath := CachePath(dataDir, kind, version)
	if _, err := manifest.Remove(kind, version, cachePath, idx); err != nil {
		return err
	}
	return manifest.Save(manifestPath)
}
