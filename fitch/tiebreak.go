// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package fitch

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// A TieBreak is a policy used to select a state
// when more than one state is equally parsimonious
// at a node.
//
// The valid policies are Deterministic
// and SeededRandom.
type TieBreak interface {
	// String returns the name and parameters of the policy.
	String() string

	// Chooser returns a new function
	// that selects a state from a sorted set of candidates.
	chooser() func(candidates []string) string
}

// Deterministic is a tie-break policy
// that selects the lexicographically smallest state.
type Deterministic struct{}

func (d Deterministic) String() string {
	return "min"
}

func (d Deterministic) chooser() func([]string) string {
	return func(candidates []string) string {
		return candidates[0]
	}
}

// SeededRandom is a tie-break policy
// that selects a state uniformly at random
// from the candidates.
//
// Each reconstruction uses a new random source
// initialized with Seed,
// so two reconstructions with the same seed
// resolve the ties in the same way.
type SeededRandom struct {
	Seed uint64
}

func (s SeededRandom) String() string {
	return fmt.Sprintf("random=%d", s.Seed)
}

func (s SeededRandom) chooser() func([]string) string {
	rng := rand.New(rand.NewPCG(s.Seed, 0))
	return func(candidates []string) string {
		return candidates[rng.IntN(len(candidates))]
	}
}

// ParseTieBreak returns a tie-break policy from its name.
// Valid names are "min" (or "deterministic")
// and "random" (or "seeded-random").
// The seed is only used by the random policy.
func ParseTieBreak(name string, seed uint64) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "min", "deterministic":
		return Deterministic{}, nil
	case "random", "seeded-random":
		return SeededRandom{Seed: seed}, nil
	}
	return nil, fmt.Errorf("unknown tie-break policy %q", name)
}
