// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a traitrec project.
package terms

import (
	"fmt"
	"os"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/project"
	"github.com/js-arias/traitrec/trait"
)

var Command = &command.Command{
	Usage: `terms [--tree <tree-name>]
	[--missing] [--sep <separator>]
	<project-file>`,
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a traitrec project and print the name of
the terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the flag --missing is set, only the terminals without observations in the
trait data of the project will be printed (i.e., the terminals that will be
assigned to the sentinel state in a reconstruction). Use the flag --sep to
define the separator of the sample name in the terminal names.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var missingFlag bool
var sepFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&missingFlag, "missing", false, "")
	c.Flags().StringVar(&sepFlag, "sep", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tf := p.Path(project.Trees)
	if tf == "" {
		return nil
	}

	ls, err := makeTermList(tf)
	if err != nil {
		return err
	}

	if missingFlag {
		d, err := p.Traits()
		if err != nil {
			return err
		}
		a := trait.Assigner{Data: d, Sep: sepFlag}
		ls = slices.DeleteFunc(ls, func(term string) bool {
			return len(a.States(term)) > 0
		})
	}

	for _, term := range ls {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}

	return nil
}

func makeTermList(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}

	var ls []string
	if treeName != "" {
		ls = append(ls, treeName)
	} else {
		ls = c.Names()
	}

	terms := make(map[string]bool)
	for _, tn := range ls {
		t := c.Tree(tn)
		if t == nil {
			continue
		}
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	return termList, nil
}
