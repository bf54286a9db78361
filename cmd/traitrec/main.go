// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Traitrec is a tool for the reconstruction
// of discrete traits
// (for example geography or clades)
// on time calibrated outbreak trees
// using maximum parsimony.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/cmd/traitrec/draw"
	"github.com/js-arias/traitrec/cmd/traitrec/freq"
	"github.com/js-arias/traitrec/cmd/traitrec/rec"
	"github.com/js-arias/traitrec/cmd/traitrec/trait"
	"github.com/js-arias/traitrec/cmd/traitrec/tree"
)

var app = &command.Command{
	Usage: "traitrec <command> [<argument>...]",
	Short: "a tool for parsimony reconstruction of discrete traits",
}

func init() {
	app.Add(draw.Command)
	app.Add(freq.Command)
	app.Add(rec.Command)
	app.Add(trait.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
