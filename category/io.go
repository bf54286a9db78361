// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package category

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads a merger from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - state, the reconstructed state
//   - category, the display category of the state
//
// Here is an example file:
//
//	state	category
//	Abia	SE
//	Bayelsa	SS
//	Lagos	SW
//	Rivers	Rivers
func ReadTSV(r io.Reader) (*Merger, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range []string{"state", "category"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	m := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "state"
		state := canon(row[fields[f]])
		if state == "" {
			continue
		}

		f = "category"
		cat := canon(row[fields[f]])
		if cat == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty category for state %q", ln, f, state)
		}
		if prev, ok := m.cats[state]; ok && prev != cat {
			return nil, fmt.Errorf("on row %d: state %q: category %q, previously defined as %q", ln, state, cat, prev)
		}
		m.Add(state, cat)
	}
	return m, nil
}

// TSV writes a merger as a TSV file.
func (m *Merger) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"state", "category"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, s := range m.States() {
		row := []string{
			s,
			m.cats[s],
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// FromMetadata builds a merger
// from two columns of a sample metadata table.
// The from field contains the states,
// and the to field the category of each state.
// Rows with an empty state
// or an empty category
// are ignored.
//
// It returns an error if a state
// is assigned to more than one category.
//
// Comma is the field delimiter of the table
// (for example ',' or '\t').
func FromMetadata(r io.Reader, comma rune, from, to string) (*Merger, error) {
	tab := csv.NewReader(r)
	tab.Comma = comma
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))
	for _, h := range []string{from, to} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	m := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		state := canon(row[fields[from]])
		cat := canon(row[fields[to]])
		if state == "" || cat == "" {
			continue
		}
		if prev, ok := m.cats[state]; ok && prev != cat {
			return nil, fmt.Errorf("on row %d: state %q: category %q, previously defined as %q", ln, state, cat, prev)
		}
		m.Add(state, cat)
	}
	return m, nil
}
