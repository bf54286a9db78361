// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var header = []string{
	"tree",
	"node",
	"parent",
	"taxon",
	"set",
	"state",
	"category",
}

// TSV writes one or more reconstructed trees
// as a TSV file.
func TSV(w io.Writer, trees []*Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, t := range trees {
		for _, n := range t.Nodes {
			row := []string{
				t.Name,
				strconv.Itoa(n.ID),
				strconv.Itoa(n.Parent),
				n.Taxon,
				strings.Join(n.Set, ","),
				n.State,
				n.Category,
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// ReadTSV reads a TSV file
// with one or more reconstructed trees.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the tree
//   - node, the ID of the node
//   - parent, the ID of the parent node (-1 for the root)
//   - taxon, the name of the terminal (empty for internal nodes)
//   - set, the comma separated list
//     of most parsimonious states of the node
//   - state, the reconstructed state
//   - category, the display category of the state
//
// Here is an example file:
//
//	tree	node	parent	taxon	set	state	category
//	zika	0	-1		BRA,DOM	BRA	BRA
//	zika	1	0	KU501215	BRA	BRA	BRA
//	zika	2	0	MF438286	DOM	DOM	DOM
func ReadTSV(r io.Reader) (map[string]*Tree, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	nodes := make(map[string]map[int]Node)
	var names []string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		name := strings.TrimSpace(row[fields[f]])
		if name == "" {
			continue
		}

		f = "node"
		id, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "parent"
		p, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		n := Node{
			ID:       id,
			Parent:   p,
			Taxon:    row[fields["taxon"]],
			State:    row[fields["state"]],
			Category: row[fields["category"]],
		}
		if set := row[fields["set"]]; set != "" {
			n.Set = strings.Split(set, ",")
		}

		t, ok := nodes[name]
		if !ok {
			t = make(map[int]Node)
			nodes[name] = t
			names = append(names, name)
		}
		if _, dup := t[id]; dup {
			return nil, fmt.Errorf("on row %d: tree %q: node %d already defined", ln, name, id)
		}
		t[id] = n
	}

	trees := make(map[string]*Tree, len(names))
	for _, name := range names {
		t := &Tree{
			Name:  name,
			Nodes: make([]Node, len(nodes[name])),
		}
		ids := make([]int, 0, len(nodes[name]))
		for id := range nodes[name] {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for i, id := range ids {
			if id != i {
				return nil, fmt.Errorf("tree %q: node %d: expecting node %d", name, id, i)
			}
			n := nodes[name][id]
			if n.Parent < -1 || n.Parent >= len(ids) {
				return nil, fmt.Errorf("tree %q: node %d: undefined parent %d", name, id, n.Parent)
			}
			if n.Parent == id {
				return nil, fmt.Errorf("tree %q: node %d: node is its own parent", name, id)
			}
			t.Nodes[id] = n
		}
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tree %q: %v", name, err)
		}
		trees[name] = t
	}
	return trees, nil
}

// Validate checks that the tree has a single root
// and that every node descends from the root.
func (t *Tree) validate() error {
	root := -1
	for _, n := range t.Nodes {
		if n.Parent != -1 {
			continue
		}
		if root >= 0 {
			return fmt.Errorf("node %d: root already defined as node %d", n.ID, root)
		}
		root = n.ID
	}
	if root < 0 {
		return fmt.Errorf("undefined root")
	}

	// walk marks the last walk that visited a node,
	// zero for unvisited nodes,
	// and -1 for nodes connected to the root
	walk := make([]int, len(t.Nodes))
	walk[root] = -1
	for _, n := range t.Nodes {
		id := n.ID
		for walk[id] == 0 {
			walk[id] = n.ID + 1
			id = t.Nodes[id].Parent
		}
		if walk[id] != -1 {
			return fmt.Errorf("node %d: not connected to the root", n.ID)
		}
		for id = n.ID; walk[id] != -1; id = t.Nodes[id].Parent {
			walk[id] = -1
		}
	}
	return nil
}
