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

// Package lcadb defines the Database capability set and its on-disk cache
// and manifest registry.
package lcadb

import (
	"fmt"

	"github.com/odyssey-lca/odyssey/ecospold"
	"github.com/odyssey-lca/odyssey/labeled"
)

// Database bundles the technology matrix A, intervention matrix B, a set
// of characterization matrices keyed by method name, and the candidate
// inventory items fed to the search index. It is built once from source
// files, cached to disk, and reloaded on demand. A's numeric factor is
// attached when A is built or when LoadCache reads its sidecar; Lci only
// reads it through Matrix.Solve and never re-creates it.
type Database struct {
	Kind       string
	Version    string
	A          *labeled.Matrix[string]
	B          *labeled.Matrix[string]
	CMethods   map[string]*labeled.Matrix[string]
	Candidates []ecospold.InventoryItem

	byID map[string]ecospold.InventoryItem
}

// Name returns the "<Kind>_<Version>" identifier used as the manifest key,
// cache file name, and search index database facet.
func (d *Database) Name() string { return d.Kind + "_" + d.Version }

// EmptyReferenceFlow returns a zero labeled vector over A's column space
// (activity ids), ready to be populated by the LCA runner.
func (d *Database) EmptyReferenceFlow() *labeled.Vector[string] {
	return d.A.ZerosLikeCols()
}

// ListCandidates returns every inventory item in this database.
func (d *Database) ListCandidates() []ecospold.InventoryItem { return d.Candidates }

// FindCandidate looks up an inventory item by activity id.
func (d *Database) FindCandidate(id string) (ecospold.InventoryItem, bool) {
	if d.byID == nil {
		d.byID = make(map[string]ecospold.InventoryItem, len(d.Candidates))
		for _, it := range d.Candidates {
			d.byID[it.ID] = it
		}
	}
	it, ok := d.byID[id]
	return it, ok
}

// Lci computes the elementary-flow vector g = B*(A.solve(f)) for a
// reference flow f.
func (d *Database) Lci(f *labeled.Vector[string]) (*labeled.Vector[string], error) {
	s, err := d.A.Solve(f)
	if err != nil {
		return nil, fmt.Errorf("lcadb: %s: lci: %w", d.Name(), err)
	}
	g, err := d.B.Dot(s)
	if err != nil {
		return nil, fmt.Errorf("lcadb: %s: lci: %w", d.Name(), err)
	}
	return g, nil
}

// Lcia characterizes an elementary-flow vector into an impact vector using
// the named method (e.g. "ef31").
func (d *Database) Lcia(g *labeled.Vector[string], method string) (*labeled.Vector[string], error) {
	c, ok := d.CMethods[method]
	if !ok {
		return nil, fmt.Errorf("lcadb: %s: unknown characterization method %q", d.Name(), method)
	}
	h, err := c.Dot(g)
	if err != nil {
		return nil, fmt.Errorf("lcadb: %s: lcia: %w", d.Name(), err)
	}
	return h, nil
}

// Lca computes lci then lcia: h = C*(B*(A.solve(f))).
func (d *Database) Lca(f *labeled.Vector[string], method string) (*labeled.Vector[string], error) {
	g, err := d.Lci(f)
	if err != nil {
		return nil, err
	}
	return d.Lcia(g, method)
}
