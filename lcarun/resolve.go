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
	"fmt"
	"path/filepath"

	"github.com/odyssey-lca/odyssey/labeled"
	"github.com/odyssey-lca/odyssey/lcadb"
	"github.com/odyssey-lca/odyssey/search"
)

// maxRecursionDepth guards against cyclic file includes in nested activity
// files.
const maxRecursionDepth = 32

// ErrNoMatch is returned when an exchange's search query resolves to no
// candidate in the target database.
var ErrNoMatch = errors.New("lcarun: exchange matched no candidate")

// ErrAmbiguousMatch is returned when an exchange's search query resolves
// to more than one candidate, so no single activity id can be chosen.
var ErrAmbiguousMatch = errors.New("lcarun: exchange matched more than one candidate")

// DatabaseLoader lazily loads a Database by reference, from cache or by a
// fresh import, depending on the caller.
type DatabaseLoader interface {
	LoadDatabase(ref DatabaseRef) (*lcadb.Database, error)
}

// Searcher is the subset of the search index the runner needs to resolve
// an exchange name to exactly one activity id.
type Searcher interface {
	SearchForIDs(q search.Query) ([]string, error)
}

// resolver holds the two working maps the recursive resolution
// accumulates into, keyed by "<db_name>_<version>", per the shared-state
// pattern rather than threading results back up the call chain.
type resolver struct {
	loader    DatabaseLoader
	searcher  Searcher
	databases map[string]*lcadb.Database
	rfs       map[string]*labeled.Vector[string]
}

// Resolve loads path's activity file and recursively resolves every
// exchange (including nested file links) into per-database reference-flow
// vectors, returning the databases touched and their accumulated demand.
func Resolve(path string, loader DatabaseLoader, searcher Searcher) (map[string]*lcadb.Database, map[string]*labeled.Vector[string], error) {
	w := &resolver{
		loader:    loader,
		searcher:  searcher,
		databases: make(map[string]*lcadb.Database),
		rfs:       make(map[string]*labeled.Vector[string]),
	}
	if err := w.resolveFile(path, 1.0, 0); err != nil {
		return nil, nil, err
	}
	return w.databases, w.rfs, nil
}

func (w *resolver) resolveFile(path string, amount float64, depth int) error {
	if depth > maxRecursionDepth {
		return fmt.Errorf("lcarun: %s: recursion depth exceeds %d, likely a cyclic file link", path, maxRecursionDepth)
	}
	af, err := LoadActivityFile(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	for _, e := range af.Exchanges {
		scaled := amount * e.Amount
		if e.File != "" {
			sub := e.File
			if !filepath.IsAbs(sub) {
				sub = filepath.Join(dir, sub)
			}
			if err := w.resolveFile(sub, scaled, depth+1); err != nil {
				return err
			}
			continue
		}
		if err := w.resolveDatabaseExchange(e, scaled); err != nil {
			return err
		}
	}
	return nil
}

func (w *resolver) resolveDatabaseExchange(e Exchange, amount float64) error {
	key := e.Database.Key()
	f, ok := w.rfs[key]
	if !ok {
		db, err := w.loader.LoadDatabase(*e.Database)
		if err != nil {
			return fmt.Errorf("lcarun: loading database %s: %w", key, err)
		}
		w.databases[key] = db
		f = db.EmptyReferenceFlow()
		w.rfs[key] = f
	}

	ids, err := w.searcher.SearchForIDs(search.Query{
		Text:     e.Name,
		Database: key,
		Location: e.Location,
		Unit:     e.Unit,
	})
	if err != nil {
		return fmt.Errorf("lcarun: searching for %q: %w", e.Name, err)
	}
	switch {
	case len(ids) == 0:
		return fmt.Errorf("lcarun: exchange %q in %s: %w", e.Name, key, ErrNoMatch)
	case len(ids) > 1:
		return fmt.Errorf("lcarun: exchange %q resolved to %d candidates in %s: %w", e.Name, len(ids), key, ErrAmbiguousMatch)
	}
	if _, err := f.Set(ids[0], amount); err != nil {
		return fmt.Errorf("lcarun: setting reference flow for %s: %w", ids[0], err)
	}
	return nil
}
