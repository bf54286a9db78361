// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the trees of a traitrec project
// with branches colored by the reconstructed categories
// as SVG files.
package draw

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/project"
	"github.com/js-arias/traitrec/recon"
)

var Command = &command.Command{
	Usage: `draw [--tree <tree>]
	[--width <value>] [--nolegend] [--nonames]
	[-o|--output <out-prefix>]
	<project-file> <reconstruction-file>`,
	Short: "draw reconstructed trees as SVG files",
	Long: `
Command draw reads the trees of a traitrec project, and a reconstruction file
produced with 'traitrec rec', and draws the trees into SVG-encoded files, with
each branch colored by the display category of the node at the end of the
branch.

The first argument of the command is the name of the project file. The second
argument is the reconstruction file.

The colors of the categories are taken from the color key file of the
project. Categories without a defined color will be assigned a color from the
iridescent scheme of Paul Tol.

By default, the distance from the root to the most recent terminal will be
600 pixels. Use the flag --width to set a different value.

By default, all reconstructed trees will be drawn. If the flag --tree is set,
only the indicated tree will be drawn.

By default, a legend with the color of each category, and the names of the
terminals will be drawn. Use the flags --nolegend and --nonames to remove
them.

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var noLegend bool
var noNames bool
var width float64
var treeName string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&noLegend, "nolegend", false, "")
	c.Flags().BoolVar(&noNames, "nonames", false, "")
	c.Flags().Float64Var(&width, "width", 600, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project file and reconstruction file")
	}
	if width <= 0 {
		return c.UsageError(fmt.Sprintf("invalid width value %.3f", width))
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	keys, err := p.Colors()
	if err != nil {
		return err
	}

	rec, err := readRec(args[1])
	if err != nil {
		return err
	}

	// the same category has the same color in all trees
	var cats []string
	for _, rt := range rec {
		for c := range rt.Categories() {
			cats = append(cats, c)
		}
	}
	keys.Palette(cats)

	ls := tc.Names()
	if treeName != "" {
		ls = []string{treeName}
	}
	for _, tn := range ls {
		rt, ok := rec[tn]
		if !ok {
			if treeName != "" {
				return fmt.Errorf("tree %q not found in reconstruction %q", tn, args[1])
			}
			continue
		}
		t := tc.Tree(tn)
		if t == nil {
			return fmt.Errorf("tree %q not found in project %q", tn, args[0])
		}
		if len(t.Nodes()) != len(rt.Nodes) {
			return fmt.Errorf("tree %q: reconstruction with %d nodes, want %d", tn, len(rt.Nodes), len(t.Nodes()))
		}

		s := copyTree(t, rt, keys, width)
		if err := writeSVG(tn, s); err != nil {
			return err
		}
	}
	return nil
}

func readRec(name string) (map[string]*recon.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := recon.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return rec, nil
}

func writeSVG(name string, t svgTree) (err error) {
	if outPrefix != "" {
		name = fmt.Sprintf("%s-%s.svg", outPrefix, name)
	} else {
		name += ".svg"
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
