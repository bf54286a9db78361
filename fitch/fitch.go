// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fitch implements the reconstruction
// of ancestral discrete traits
// by maximum parsimony
// using Fitch's algorithm.
//
// The reconstruction is made in two passes.
// In the down pass (from the terminals to the root)
// each node receives the set of states
// that are consistent with a most parsimonious reconstruction:
// the intersection of the sets of its children,
// or its union,
// if the intersection is empty.
// In the up pass (from the root to the terminals)
// each node receives a single state:
// the state of its parent,
// if it is in the node set,
// or a state selected from the node set
// using an explicit tie-break policy.
package fitch

import (
	"errors"
	"fmt"
	"slices"
)

// Tree is a rooted tree
// with nodes identified by an index
// in the range [0, N).
//
// A *timetree.Tree implements this interface.
type Tree interface {
	// Root returns the index of the root node.
	Root() int

	// Nodes returns the index of all nodes in the tree.
	Nodes() []int

	// Children returns the children of a node.
	Children(id int) []int

	// IsTerm returns true if the node is a terminal.
	IsTerm(id int) bool

	// Taxon returns the name of the taxon
	// associated with a terminal.
	Taxon(id int) string
}

// A TipStater returns the observed trait states
// of a terminal taxon.
// A nil or empty slice indicates
// that the state of the taxon is missing.
type TipStater interface {
	States(taxon string) []string
}

// TipFunc is an adapter to use an ordinary function
// as a TipStater.
type TipFunc func(taxon string) []string

// States calls f(taxon).
func (f TipFunc) States(taxon string) []string {
	return f(taxon)
}

// Errors returned by Reconstruct.
var (
	// ErrInvalidTree is returned when the tree is empty,
	// has a cycle,
	// or has a duplicated or out of range node index.
	ErrInvalidTree = errors.New("invalid tree")

	// ErrMissingTrait is returned
	// when the state of a terminal is unknown.
	ErrMissingTrait = errors.New("missing trait")
)

// Reconstruct returns the most parsimonious reconstruction
// of the states of a discrete trait
// on the nodes of a tree.
//
// Ties are resolved with the given tie-break policy,
// and each one is recorded in the result.
// Without a TipStater
// the state of every terminal is unknown.
// If an error is found
// no result is returned.
func Reconstruct(t Tree, tips TipStater, tb TieBreak) (*Result, error) {
	if tb == nil {
		tb = Deterministic{}
	}

	order, parent, err := preOrder(t)
	if err != nil {
		return nil, err
	}

	sets := make([][]string, len(order))

	// down pass
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		if t.IsTerm(id) {
			var obs []string
			if tips != nil {
				obs = normalize(tips.States(t.Taxon(id)))
			}
			if len(obs) == 0 {
				return nil, fmt.Errorf("%w: node %d: taxon %q", ErrMissingTrait, id, t.Taxon(id))
			}
			sets[id] = obs
			continue
		}

		children := t.Children(id)
		set := sets[children[0]]
		for _, c := range children[1:] {
			set = intersection(set, sets[c])
		}
		if len(set) == 0 {
			for _, c := range children {
				set = union(set, sets[c])
			}
		}
		sets[id] = set
	}

	// up pass
	choose := tb.chooser()
	r := &Result{
		order:  order,
		parent: parent,
		sets:   sets,
		states: make([]string, len(order)),
	}
	for _, id := range order {
		set := sets[id]
		if p := parent[id]; p >= 0 {
			if _, ok := slices.BinarySearch(set, r.states[p]); ok {
				r.states[id] = r.states[p]
				continue
			}
		}
		if len(set) == 1 {
			r.states[id] = set[0]
			continue
		}

		s := choose(set)
		r.states[id] = s
		r.ties = append(r.ties, TieEvent{
			Node:       id,
			Candidates: slices.Clone(set),
			Chosen:     s,
		})
	}

	return r, nil
}

// Normalize returns a sorted set of states
// without duplicates.
func normalize(states []string) []string {
	if len(states) == 0 {
		return nil
	}
	set := slices.Clone(states)
	slices.Sort(set)
	return slices.Compact(set)
}

// Intersection returns the states present in both sorted sets.
func intersection(a, b []string) []string {
	var set []string
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			set = append(set, a[i])
			i++
			j++
		}
	}
	return set
}

// Union returns the states present in any of two sorted sets.
func union(a, b []string) []string {
	set := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			set = append(set, a[i])
			i++
		case a[i] > b[j]:
			set = append(set, b[j])
			j++
		default:
			set = append(set, a[i])
			i++
			j++
		}
	}
	set = append(set, a[i:]...)
	return append(set, b[j:]...)
}
