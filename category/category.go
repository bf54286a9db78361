// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package category implements the merge
// of reconstructed trait states
// into broader display categories
// (for example,
// from administrative states to geographic regions).
package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnmapped is returned when a state
// has no defined category.
var ErrUnmapped = errors.New("state without category")

// A Mapper returns the display category of a state.
type Mapper interface {
	Category(state string) (string, error)
}

// Identity is a Mapper
// in which each state is its own category.
type Identity struct{}

// Category returns the state.
func (Identity) Category(state string) (string, error) {
	return state, nil
}

// Merger is a table that assigns
// a display category to each state.
type Merger struct {
	cats map[string]string
}

// New creates a new empty merger.
func New() *Merger {
	return &Merger{
		cats: make(map[string]string),
	}
}

// Add sets the category of a state.
// It returns the previous category of the state.
func (m *Merger) Add(state, category string) string {
	state = canon(state)
	category = canon(category)
	prev := m.cats[state]
	if category == "" {
		delete(m.cats, state)
		return prev
	}
	m.cats[state] = category
	return prev
}

// Category returns the category of a state.
// If the state has no category
// it returns an error wrapping ErrUnmapped.
func (m *Merger) Category(state string) (string, error) {
	c, ok := m.cats[canon(state)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmapped, state)
	}
	return c, nil
}

// Categories returns the defined categories.
func (m *Merger) Categories() []string {
	cs := make(map[string]bool)
	for _, c := range m.cats {
		cs[c] = true
	}

	cats := make([]string, 0, len(cs))
	for c := range cs {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	return cats
}

// States returns the states with a defined category.
func (m *Merger) States() []string {
	states := make([]string, 0, len(m.cats))
	for s := range m.cats {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Merge returns the category of each state in a list.
// If any state is not mapped,
// it returns an error
// and no categories.
func Merge(m Mapper, states []string) ([]string, error) {
	if m == nil {
		m = Identity{}
	}

	cats := make([]string, len(states))
	for i, s := range states {
		c, err := m.Category(s)
		if err != nil {
			return nil, err
		}
		cats[i] = c
	}
	return cats, nil
}

// Overrides is a Mapper
// in which a set of states
// have a category that differs
// from the category given by another Mapper.
type Overrides struct {
	Mapper Mapper
	Cats   map[string]string
}

// Category returns the category of a state.
func (o Overrides) Category(state string) (string, error) {
	if c, ok := o.Cats[state]; ok {
		return c, nil
	}
	if o.Mapper == nil {
		return state, nil
	}
	return o.Mapper.Category(state)
}

// Canon returns a state or a category
// in its canonical form.
func canon(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
