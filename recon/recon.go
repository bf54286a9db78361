// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package recon implements reconstruction tables:
// the reconstructed state
// and display category
// of each node of a tree.
package recon

import (
	"fmt"

	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/category"
	"github.com/js-arias/traitrec/fitch"
)

// Param is a collection of parameters
// for a reconstruction.
type Param struct {
	// Observed states of the terminals
	Tips fitch.TipStater

	// Tie-break policy
	Tie fitch.TieBreak

	// Display category of the states.
	// If nil,
	// each state is its own category.
	Cats category.Mapper
}

// A Node is a reconstructed node.
type Node struct {
	ID       int
	Parent   int
	Taxon    string
	Set      []string
	State    string
	Category string
}

// Tree is the reconstruction of a tree.
type Tree struct {
	Name string

	// Nodes indexed by ID
	Nodes []Node

	// Ties resolved during the reconstruction
	Ties []fitch.TieEvent
}

// Reconstruct reconstructs the states of a tree.
func Reconstruct(t *timetree.Tree, p Param) (*Tree, error) {
	r, err := fitch.Reconstruct(t, p.Tips, p.Tie)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	cm := p.Cats
	if cm == nil {
		cm = category.Identity{}
	}
	cats, err := category.Merge(cm, r.States())
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", t.Name(), err)
	}

	rt := &Tree{
		Name:  t.Name(),
		Nodes: make([]Node, r.Len()),
		Ties:  r.Ties(),
	}
	for _, id := range r.Nodes() {
		rt.Nodes[id] = Node{
			ID:       id,
			Parent:   r.Parent(id),
			Taxon:    t.Taxon(id),
			Set:      r.Set(id),
			State:    r.State(id),
			Category: cats[id],
		}
	}
	return rt, nil
}

// Change is a change of category
// between a node and its parent.
type Change struct {
	From string
	To   string
}

// Changes returns the number of category changes
// in a reconstructed tree.
func (t *Tree) Changes() map[Change]int {
	ch := make(map[Change]int)
	for _, n := range t.Nodes {
		if n.Parent < 0 {
			continue
		}
		from := t.Nodes[n.Parent].Category
		if from == n.Category {
			continue
		}
		ch[Change{From: from, To: n.Category}]++
	}
	return ch
}

// Categories returns the number of nodes
// in each category.
func (t *Tree) Categories() map[string]int {
	cats := make(map[string]int)
	for _, n := range t.Nodes {
		cats[n.Category]++
	}
	return cats
}
