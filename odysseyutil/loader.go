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
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/odyssey-lca/odyssey/lcadb"
	"github.com/odyssey-lca/odyssey/lcarun"
	"github.com/odyssey-lca/odyssey/search"
)

// CacheLoader implements lcarun.DatabaseLoader by reading a database's
// binary cache from dataDir, memoizing one load per "<Kind>_<Version>" for
// the life of the process.
type CacheLoader struct {
	dataDir string

	mu     sync.Mutex
	loaded map[string]*lcadb.Database
}

// NewCacheLoader returns a loader rooted at dataDir.
func NewCacheLoader(dataDir string) *CacheLoader {
	return &CacheLoader{dataDir: dataDir, loaded: make(map[string]*lcadb.Database)}
}

// LoadDatabase satisfies lcarun.DatabaseLoader.
func (l *CacheLoader) LoadDatabase(ref lcarun.DatabaseRef) (*lcadb.Database, error) {
	key := ref.Key()

	l.mu.Lock()
	defer l.mu.Unlock()
	if db, ok := l.loaded[key]; ok {
		return db, nil
	}

	path := CachePath(l.dataDir, ref.Name, ref.Version)
	db, err := lcadb.LoadCache(path)
	if err != nil {
		return nil, fmt.Errorf("odysseyutil: loading %s: %w", key, err)
	}
	logrus.WithField("database", key).Info("odysseyutil: loaded database from cache")
	l.loaded[key] = db
	return db, nil
}

// IndexSearcher adapts a *search.Index to lcarun.Searcher.
type IndexSearcher struct {
	Index *search.Index
}

// SearchForIDs satisfies lcarun.Searcher.
func (s IndexSearcher) SearchForIDs(q search.Query) ([]string, error) {
	return s.Index.SearchForIDs(q)
}
