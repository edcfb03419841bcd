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

// Package lcarun resolves a YAML activity file into per-database reference
// flows and runs lci/lcia/lca over each, accumulating one impact vector.
package lcarun

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// ErrInvalidExchange is returned by Validate when an exchange sets neither
// or both of Database and File.
var ErrInvalidExchange = errors.New("lcarun: exchange must set exactly one of database or file")

// DatabaseRef names the database an exchange's name should be resolved
// against.
type DatabaseRef struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Key returns the "<Name>_<Version>" identifier used to key the working
// maps and the search index's database facet.
func (r DatabaseRef) Key() string { return r.Name + "_" + r.Version }

// Exchange is one line of an activity file: either a database-resolved
// demand or a link to another activity file, scaled by Amount.
type Exchange struct {
	Name     string       `json:"name,omitempty"`
	Location string       `json:"location,omitempty"`
	Unit     string       `json:"unit,omitempty"`
	Amount   float64      `json:"amount"`
	Database *DatabaseRef `json:"database,omitempty"`
	File     string       `json:"file,omitempty"`
}

// Validate enforces that an exchange carries exactly one of Database or
// File.
func (e Exchange) Validate() error {
	if (e.Database == nil) == (e.File == "") {
		return fmt.Errorf("lcarun: exchange %q: %w", e.Name, ErrInvalidExchange)
	}
	return nil
}

// ActivityFile is the top-level shape of a user-supplied YAML reference
// flow.
type ActivityFile struct {
	Exchanges []Exchange `json:"exchanges"`
}

// LoadActivityFile reads and decodes a YAML activity file.
func LoadActivityFile(path string) (*ActivityFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lcarun: reading %s: %w", path, err)
	}
	var a ActivityFile
	if err := yaml.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("lcarun: parsing %s: %w", path, err)
	}
	for _, e := range a.Exchanges {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("lcarun: %s: %w", path, err)
		}
	}
	return &a, nil
}
