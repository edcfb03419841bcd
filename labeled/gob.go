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

package labeled

import (
	"bytes"
	"encoding/gob"
)

// GobEncode serializes the label order; toIndex is rebuilt on decode since
// it is fully determined by first-occurrence order.
func (m *BiMap[L]) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(m.toLabel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a BiMap from its encoded label order.
func (m *BiMap[L]) GobDecode(data []byte) error {
	var labels []L
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&labels); err != nil {
		return err
	}
	m.toLabel = labels
	m.toIndex = make(map[L]int, len(labels))
	for i, l := range labels {
		m.toIndex[l] = i
	}
	return nil
}

// matrixWire is the on-disk shape of a Matrix: everything except the
// numeric Factor, which is persisted separately as a sidecar file and
// reattached by the caller (e.g. via LoadNumeric).
type matrixWire[L comparable] struct {
	RowLabels *BiMap[L]
	ColLabels *BiMap[L]
	M, N      int
	P, I      []int32
	X         []float64
}

// GobEncode serializes everything but the cached numeric factor.
func (m *Matrix[L]) GobEncode() ([]byte, error) {
	w := matrixWire[L]{RowLabels: m.RowLabels, ColLabels: m.ColLabels}
	if m.Cs != nil {
		w.M, w.N, w.P, w.I, w.X = m.Cs.M, m.Cs.N, m.Cs.P, m.Cs.I, m.Cs.X
	}
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode restores a Matrix's labels and CSC data. The caller must call
// LoadNumeric separately to reattach a cached factor.
func (m *Matrix[L]) GobDecode(data []byte) error {
	var w matrixWire[L]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	m.RowLabels = w.RowLabels
	m.ColLabels = w.ColLabels
	m.setCs(w.M, w.N, w.P, w.I, w.X)
	m.Factor = nil
	return nil
}
