// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees in a traitrec project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/project"
)

var Command = &command.Command{
	Usage: "list [--count] <project-file>",
	Short: "print a list of the trees in a project",
	Long: `
Command list reads the trees from a traitrec project and print the tree names
in the standard output.

The argument of the command is the name of the project file.

If the flag --count is given, the number of nodes and terminals of each tree
will be printed after the tree name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&countFlag, "count", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}

	ls := tc.Names()
	for _, tn := range ls {
		if !countFlag {
			fmt.Fprintf(c.Stdout(), "%s\n", tn)
			continue
		}
		t := tc.Tree(tn)
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%d\n", tn, len(t.Nodes()), len(t.Terms()))
	}
	return nil
}
