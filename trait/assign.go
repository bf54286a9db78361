// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trait

import "strings"

// Assigner assigns the observed states
// of a trait data set
// to the terminals of a tree.
//
// It implements the fitch.TipStater interface.
type Assigner struct {
	Data *Data

	// Sentinel is the state assigned
	// to terminals without observations.
	// If empty,
	// terminals without observations are missing.
	Sentinel string

	// If defined,
	// only the part of the terminal name
	// before the first Sep
	// is used as the sample name
	// (for example "MN908947|2019-12-30").
	Sep string
}

// States returns the observed states of a terminal.
func (a Assigner) States(taxon string) []string {
	if a.Sep != "" {
		taxon, _, _ = strings.Cut(taxon, a.Sep)
	}

	var obs []string
	if a.Data != nil {
		obs = a.Data.Obs(taxon)
	}
	if len(obs) == 0 && a.Sentinel != "" {
		return []string{a.Sentinel}
	}
	return obs
}
