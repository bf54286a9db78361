// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package fitch

import (
	"fmt"
	"slices"
	"strings"
)

// A TieEvent is a record of a node
// in which more than one state
// was equally parsimonious.
type TieEvent struct {
	Node       int
	Candidates []string
	Chosen     string
}

func (te TieEvent) String() string {
	return fmt.Sprintf("node %d: arbitrarily breaking tie between {%s} in favor of %q", te.Node, strings.Join(te.Candidates, ", "), te.Chosen)
}

// A Change is a branch
// in which the resolved state of the node
// is different from the state of its parent.
type Change struct {
	Node int
	From string
	To   string
}

// Result is a reconstruction of trait states
// on the nodes of a tree.
type Result struct {
	order  []int
	parent []int
	sets   [][]string
	states []string
	ties   []TieEvent
}

// Len returns the number of nodes in the reconstruction.
func (r *Result) Len() int {
	return len(r.states)
}

// Nodes returns the nodes in the order
// in which they were resolved
// (pre-order).
func (r *Result) Nodes() []int {
	return slices.Clone(r.order)
}

// Parent returns the parent of a node.
// The root has -1 as parent.
func (r *Result) Parent(id int) int {
	return r.parent[id]
}

// Set returns the most parsimonious set of states
// of a node
// as found in the down pass.
func (r *Result) Set(id int) []string {
	return slices.Clone(r.sets[id])
}

// State returns the resolved state of a node.
func (r *Result) State(id int) string {
	return r.states[id]
}

// States returns the resolved states
// indexed by node.
func (r *Result) States() []string {
	return slices.Clone(r.states)
}

// Ties returns the ties resolved in the reconstruction,
// in the order in which they were resolved.
func (r *Result) Ties() []TieEvent {
	return slices.Clone(r.ties)
}

// Changes returns the branches with a state change.
func (r *Result) Changes() []Change {
	var ch []Change
	for _, id := range r.order {
		p := r.parent[id]
		if p < 0 {
			continue
		}
		if r.states[id] == r.states[p] {
			continue
		}
		ch = append(ch, Change{
			Node: id,
			From: r.states[p],
			To:   r.states[id],
		})
	}
	return ch
}
