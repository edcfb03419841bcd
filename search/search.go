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

// Package search indexes inventory candidates across every imported
// database and answers free-text lookups used by the CLI and the
// activity-file resolver.
package search

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sirupsen/logrus"

	"github.com/odyssey-lca/odyssey/ecospold"
)

// doc is the bleve document shape for one inventory item. ExactName
// duplicates Name under a keyword (untokenized) analyzer so exact-match
// lookups can be distinguished from free-text relevance search.
type doc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ExactName string `json:"exact_name"`
	AltName   string `json:"alt_name,omitempty"`
	Database  string `json:"database"`
	Location  string `json:"location"`
	Unit      string `json:"unit"`
}

func docID(database, id string) string { return database + "::" + id }

// Index wraps a bleve index over inventory candidates.
type Index struct {
	bleve bleve.Index
}

func buildMapping() mapping.IndexMapping {
	exact := bleve.NewTextFieldMapping()
	exact.Analyzer = "keyword"

	tokenized := bleve.NewTextFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("id", exact)
	doc.AddFieldMappingsAt("name", tokenized)
	doc.AddFieldMappingsAt("exact_name", exact)
	doc.AddFieldMappingsAt("alt_name", tokenized)
	doc.AddFieldMappingsAt("database", exact)
	doc.AddFieldMappingsAt("location", exact)
	doc.AddFieldMappingsAt("unit", exact)

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	return im
}

// Open opens an existing index at path, or creates one if nothing exists
// at path yet. An existing directory that holds no index is an error.
func Open(path string) (*Index, error) {
	idx, err := bleve.Open(path)
	if err == nil {
		return &Index{bleve: idx}, nil
	}
	if !os.IsNotExist(err) && err != bleve.ErrorIndexPathDoesNotExist {
		return nil, fmt.Errorf("search: opening index %s: %w", path, err)
	}
	idx, err = bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("search: creating index %s: %w", path, err)
	}
	return &Index{bleve: idx}, nil
}

// Close releases the underlying index's file handles.
func (x *Index) Close() error { return x.bleve.Close() }

// IndexDatabase adds every candidate from items under the given database
// name, idempotent on "<database>::<id>" and committing once for the
// whole batch.
func (x *Index) IndexDatabase(database string, items []ecospold.InventoryItem) error {
	batch := x.bleve.NewBatch()
	for _, it := range items {
		d := doc{
			ID:        it.ID,
			Name:      it.Name,
			ExactName: it.Name,
			AltName:   it.AltName,
			Database:  database,
			Location:  it.Location,
			Unit:      it.Unit,
		}
		if err := batch.Index(docID(database, it.ID), d); err != nil {
			return fmt.Errorf("search: batching %s: %w", it.ID, err)
		}
	}
	if err := x.bleve.Batch(batch); err != nil {
		return fmt.Errorf("search: indexing database %s: %w", database, err)
	}
	logrus.WithFields(logrus.Fields{"database": database, "count": len(items)}).
		Info("search: indexed database")
	return nil
}

// DeleteDatabase removes every document belonging to database.
func (x *Index) DeleteDatabase(database string) error {
	q := bleve.NewTermQuery(database)
	q.SetField("database")
	req := bleve.NewSearchRequest(q)
	req.Size = 0
	count, err := x.bleve.Search(req)
	if err != nil {
		return fmt.Errorf("search: counting documents for %s: %w", database, err)
	}
	req.Size = int(count.Total)

	res, err := x.bleve.Search(req)
	if err != nil {
		return fmt.Errorf("search: finding documents for %s: %w", database, err)
	}
	batch := x.bleve.NewBatch()
	for _, hit := range res.Hits {
		batch.Delete(hit.ID)
	}
	if err := x.bleve.Batch(batch); err != nil {
		return fmt.Errorf("search: deleting documents for %s: %w", database, err)
	}
	logrus.WithFields(logrus.Fields{"database": database, "count": len(res.Hits)}).
		Info("search: removed database from index")
	return nil
}

// Result is one match returned by a query.
type Result struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Database string  `json:"database"`
	Location string  `json:"location"`
	Unit     string  `json:"unit"`
	Score    float64 `json:"score"`
}

const maxResults = 10

// Query narrows a free-text search by optional exact-match facets.
type Query struct {
	Text     string
	Database string
	Location string
	Unit     string
}

// build returns the underlying bleve query for q. Every non-empty facet
// (database, location, unit) is required (Occur::Must). The tokenized
// text match runs over the index's default composite field and is a
// should clause: it only raises the score when any clause is required,
// and must match when it is the only clause. When exact is true, a match
// on the untokenized exact_name field is additionally required, matching
// the exchange-resolution use at SearchForIDs: a fuzzy top-10 rank is not
// good enough to pick the one activity a recipe exchange should bind to.
func (q Query) build(exact bool) bleve.Query {
	var must []bleve.Query
	should := []bleve.Query{bleve.NewMatchQuery(q.Text)}
	addTerm := func(field, value string) {
		if value == "" {
			return
		}
		t := bleve.NewTermQuery(value)
		t.SetField(field)
		must = append(must, t)
	}
	if exact {
		exactMatch := bleve.NewTermQuery(q.Text)
		exactMatch.SetField("exact_name")
		must = append(must, exactMatch)
	}
	addTerm("database", q.Database)
	addTerm("location", q.Location)
	addTerm("unit", q.Unit)
	return bleve.NewBooleanQuery(must, should, nil)
}

// SearchForIDs runs q requiring an exact name match and returns at most
// the top maxResults candidate ids, ranked by relevance.
func (x *Index) SearchForIDs(q Query) ([]string, error) {
	results, err := x.searchResults(q, true)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids, nil
}

// SearchForResults runs q as a free-text relevance search and returns
// the top maxResults full results.
func (x *Index) SearchForResults(q Query) ([]Result, error) {
	return x.searchResults(q, false)
}

func (x *Index) searchResults(q Query, exact bool) ([]Result, error) {
	req := bleve.NewSearchRequest(q.build(exact))
	req.Size = maxResults
	req.Fields = []string{"id", "name", "database", "location", "unit"}

	res, err := x.bleve.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", q.Text, err)
	}
	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		out = append(out, Result{
			ID:       fieldString(hit.Fields, "id"),
			Name:     fieldString(hit.Fields, "name"),
			Database: fieldString(hit.Fields, "database"),
			Location: fieldString(hit.Fields, "location"),
			Unit:     fieldString(hit.Fields, "unit"),
			Score:    hit.Score,
		})
	}
	return out, nil
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
