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

package ecospold

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrMalformedStem is returned when a .spold file's name is not
// "<process_uuid>_<product_uuid>.spold" with two valid UUIDs.
type ErrMalformedStem struct {
	File string
	Err  error
}

func (e *ErrMalformedStem) Error() string {
	return fmt.Sprintf("ecospold: malformed file stem %q: %v", e.File, e.Err)
}
func (e *ErrMalformedStem) Unwrap() error { return e.Err }

// CompositeID splits and validates a .spold file stem, returning the
// composite "<process_uuid>_<product_uuid>" activity id.
func CompositeID(fileName string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	parts := strings.SplitN(stem, "_", 2)
	if len(parts) != 2 {
		return "", &ErrMalformedStem{File: fileName, Err: fmt.Errorf("expected '<process_uuid>_<product_uuid>'")}
	}
	if _, err := uuid.Parse(parts[0]); err != nil {
		return "", &ErrMalformedStem{File: fileName, Err: fmt.Errorf("process uuid: %w", err)}
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return "", &ErrMalformedStem{File: fileName, Err: fmt.Errorf("product uuid: %w", err)}
	}
	return stem, nil
}

// ParseDir parses every <dir>/datasets/*.spold file into a map keyed by
// composite activity id. Parsing fans out one task per file; a malformed
// file is fatal to the whole import, matching the "parser tasks are pure,
// results collected into a shared map with unique keys" concurrency model.
func ParseDir(dir string) (map[string]*Process, error) {
	pattern := filepath.Join(dir, "datasets", "*.spold")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("ecospold: globbing %s: %w", pattern, err)
	}
	logrus.WithField("count", len(files)).Info("ecospold: parsing dataset files")

	var mu sync.Mutex
	out := make(map[string]*Process, len(files))

	g, _ := errgroup.WithContext(context.Background())
	for _, f := range files {
		f := f
		g.Go(func() error {
			id, p, err := parseFile(f)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseFile(path string) (string, *Process, error) {
	id, err := CompositeID(path)
	if err != nil {
		return "", nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("ecospold: reading %s: %w", path, err)
	}
	var p Process
	if err := xml.Unmarshal(raw, &p); err != nil {
		return "", nil, fmt.Errorf("ecospold: parsing %s: %w", path, err)
	}
	return id, &p, nil
}
