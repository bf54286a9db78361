// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rec implements a command to reconstruct
// the states of a discrete trait
// on the trees of a traitrec project.
package rec

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/fitch"
	"github.com/js-arias/traitrec/project"
	"github.com/js-arias/traitrec/recon"
	"github.com/js-arias/traitrec/trait"
)

var Command = &command.Command{
	Usage: `rec [--tree <tree-name>]
	[--tie <policy>] [--seed <number>]
	[--sentinel <state>] [--sep <separator>]
	[--nocats] [--warnings]
	[-o|--output <file>] <project-file>`,
	Short: "reconstruct trait states by parsimony",
	Long: `
Command rec reads the trees and trait observations of a traitrec project, and
reconstructs the states of the trait on each node of the trees using maximum
parsimony (Fitch's algorithm).

The argument of the command is the name of the project file.

By default, all trees in the project will be reconstructed. If the flag --tree
is set, only the indicated tree will be reconstructed.

When more than one state is equally parsimonious at a node, the state of the
parent is used, if possible; otherwise, a state is selected with a tie-break
policy. By default, the lexicographically smallest state is selected ("min"
policy). With the flag --tie set to "random", a state is selected at random;
the flag --seed sets the seed of the random generator, so the same seed
always produces the same reconstruction. If the flag --warnings is given,
each resolved tie will be printed in the standard error.

Terminals without an observed state are an error. Use the flag --sentinel to
define a state for those terminals (for example "-" or "Other"). The sentinel
is used as any other state in the reconstruction. If the terminal names of the
trees contain additional information after the sample name (for example
"KU501215|2015-07-01"), use the flag --sep to set the separator.

If the project has a category file, the reconstructed states will be assigned
to its display categories; a state without a category is an error. Use the
flag --nocats to ignore the project categories.

The output is a tab-delimited file with the following columns:

	-tree      the name of the tree
	-node      the ID of the node
	-parent    the ID of the parent node (-1 for the root)
	-taxon     the name of the terminal
	-set       the most parsimonious states of the node
	-state     the reconstructed state
	-category  the display category of the state

By default the output is printed in the standard output. Use the flag -o, or
--output, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var noCats bool
var warnFlag bool
var seedFlag uint64
var tieFlag string
var sentinel string
var sepFlag string
var treeName string
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&noCats, "nocats", false, "")
	c.Flags().BoolVar(&warnFlag, "warnings", false, "")
	c.Flags().Uint64Var(&seedFlag, "seed", 0, "")
	c.Flags().StringVar(&tieFlag, "tie", "min", "")
	c.Flags().StringVar(&sentinel, "sentinel", "", "")
	c.Flags().StringVar(&sepFlag, "sep", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	tb, err := fitch.ParseTieBreak(tieFlag, seedFlag)
	if err != nil {
		return c.UsageError(err.Error())
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}
	d, err := p.Traits()
	if err != nil {
		return err
	}

	param := recon.Param{
		Tips: trait.Assigner{
			Data:     d,
			Sentinel: sentinel,
			Sep:      sepFlag,
		},
		Tie: tb,
	}
	if !noCats {
		m, err := p.Categories()
		if err != nil {
			return err
		}
		if m != nil {
			param.Cats = m
		}
	}

	ls := tc.Names()
	if treeName != "" {
		ls = []string{treeName}
	}

	var trees []*recon.Tree
	for _, tn := range ls {
		t := tc.Tree(tn)
		if t == nil {
			return fmt.Errorf("tree %q not found in project %q", tn, args[0])
		}
		rt, err := recon.Reconstruct(t, param)
		if err != nil {
			return err
		}
		if warnFlag {
			for _, te := range rt.Ties {
				fmt.Fprintf(os.Stderr, "WARNING: tree %q: %s\n", tn, te)
			}
		}
		trees = append(trees, rt)
	}

	if output == "" {
		return writeRec(c.Stdout(), trees, tb)
	}
	return writeRecFile(output, trees, tb)
}

func writeRec(w io.Writer, trees []*recon.Tree, tb fitch.TieBreak) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# parsimony reconstruction of trait states\n")
	fmt.Fprintf(bw, "# tie-break policy: %s\n", tb)
	if sentinel != "" {
		fmt.Fprintf(bw, "# sentinel state: %q\n", sentinel)
	}
	if err := recon.TSV(bw, trees); err != nil {
		return err
	}
	return bw.Flush()
}

func writeRecFile(name string, trees []*recon.Tree, tb fitch.TieBreak) (err error) {
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

	if err := writeRec(f, trees, tb); err != nil {
		return fmt.Errorf("while writing %q: %v", name, err)
	}
	return nil
}
