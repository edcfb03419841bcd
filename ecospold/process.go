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

// Package ecospold parses EcoSpold v2 activity datasets and assembles them
// into the technology matrix A and intervention matrix B described in the
// labeled package's terms.
package ecospold

import "encoding/xml"

// Process is a parsed EcoSpold record for a single activity. The root
// element may be named either activityDataset or childActivityDataset;
// Process has no XMLName field, so xml.Unmarshal matches either.
type Process struct {
	ActivityName          string                 `xml:"activityDescription>activity>activityName"`
	Geography             string                 `xml:"activityDescription>geography>shortname"`
	IntermediateExchanges []IntermediateExchange `xml:"flowData>intermediateExchange"`
	ElementaryExchanges   []ElementaryExchange   `xml:"flowData>elementaryExchange"`
}

// IntermediateExchange is a product flow into or out of an activity. A
// non-empty ProcessID links it to the activity that produces it; an empty
// ProcessID marks it as the activity's own reference product.
type IntermediateExchange struct {
	ProductID  string   `xml:"id,attr"`
	ProcessID  string   `xml:"activityLinkId"`
	Amount     float64  `xml:"amount,attr"`
	Name       string   `xml:"name"`
	Unit       string   `xml:"unitName"`
	InputGroup *xmlFlag `xml:"inputGroup"`
}

// ElementaryExchange is an environmental flow (emission or resource use)
// attributed to an activity.
type ElementaryExchange struct {
	ProductID string  `xml:"id,attr"`
	Amount    float64 `xml:"amount,attr"`
}

// xmlFlag is present iff the corresponding element appears at all; its
// content is irrelevant. Used to detect inputGroup (consumption) vs its
// absence (production).
type xmlFlag struct {
	XMLName xml.Name
}

// IsInput reports whether the exchange is a consumption (an input to the
// activity) as opposed to a production (an output).
func (e IntermediateExchange) IsInput() bool { return e.InputGroup != nil }
