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
	"fmt"
	"strings"
)

// InventoryItem is one searchable activity, fed to the full-text index.
type InventoryItem struct {
	ID       string
	Database string
	Name     string
	AltName  string
	Location string
	Unit     string
}

// Candidates builds one InventoryItem per process, naming the activity by
// its own activityName and using its reference product's name and unit as
// the alternate name/unit.
func Candidates(processes map[string]*Process, database string) ([]InventoryItem, error) {
	items := make([]InventoryItem, 0, len(processes))
	for id, p := range processes {
		_, productID, ok := splitCompositeID(id)
		if !ok {
			return nil, fmt.Errorf("ecospold: candidates: malformed id %q", id)
		}
		var refName, refUnit string
		found := false
		for _, ex := range p.IntermediateExchanges {
			if ex.ProcessID == "" && ex.ProductID == productID {
				refName = ex.Name
				refUnit = ex.Unit
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("ecospold: candidates: %s has no reference product exchange", id)
		}
		items = append(items, InventoryItem{
			ID:       id,
			Database: database,
			Name:     p.ActivityName,
			AltName:  refName,
			Location: p.Geography,
			Unit:     refUnit,
		})
	}
	return items, nil
}

func splitCompositeID(id string) (processID, productID string, ok bool) {
	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
