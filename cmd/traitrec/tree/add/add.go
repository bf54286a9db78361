// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add trees
// to a traitrec project.
package add

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/project"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>]
	[--format <format>] [--name <name>] [--age <value>]
	<project-file> [<tree-file>...]`,
	Short: "add time calibrated trees to a traitrec project",
	Long: `
Command add reads one or more time calibrated trees (for example, the maximum
clade credibility tree of a Delphy or BEAST analysis) and adds them to a
traitrec project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input.

Three tree formats are accepted: tab-delimited tree files, as described in
"traitrec help tree-files", nexus files (the output of most Bayesian dating
programs), and newick (parenthetical) files. By default, the format is
detected from the first characters of each file. Use the flag --format, with
"tsv", "nexus", or "newick", to set the format.

Trees in newick format have no name, so the flag --name is required to read
them. Trees in nexus files will keep the name used in the file, unless the
flag --name is used. If a file contains more than one tree, the name of the
trees will be in the form <name>.<number>.

In nexus and newick files, branch lengths are read in the time units of the
tree (usually years in outbreak trees), and stored as integer ages with six
decimal places. By default, the age of the root will be calculated from the
largest branch length between any terminal and the root. To set a different
root age, use the flag --age, with a value in the time units of the tree.

By default the trees will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'trees.tab'. A different tree file name can be defined using the
flag --file, or -f. If this flag is used, and there is tree file already
defined, then a new file with that name will be created, and used as the tree
file for the project (previously defined trees will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

// TimeScale is the number of integer age units
// per time unit of a nexus or newick tree.
const timeScale = 1_000_000

// Tree file formats.
const (
	formatNewick = "newick"
	formatNexus  = "nexus"
	formatTSV    = "tsv"
)

var treeFile string
var formatFlag string
var nameFlag string
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&formatFlag, "format", "", "")
	c.Flags().StringVar(&nameFlag, "name", "", "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	switch f := strings.ToLower(formatFlag); f {
	case "", formatNewick, formatNexus, formatTSV:
		formatFlag = f
	default:
		return c.UsageError(fmt.Sprintf("unknown tree format %q", formatFlag))
	}
	if rootAge < 0 {
		return c.UsageError(fmt.Sprintf("invalid root age %.6f", rootAge))
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	tc := timetree.NewCollection()
	if p.Path(project.Trees) != "" {
		tc, err = p.Trees()
		if err != nil {
			return fmt.Errorf("on project %q: %v", args[0], err)
		}
	}

	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	var n int
	for _, fn := range files {
		nc, err := readTrees(c.Stdin(), fn)
		if err != nil {
			return err
		}
		for _, tn := range nc.Names() {
			t := nc.Tree(tn)
			if nameFlag != "" {
				name := nameFlag
				if n > 0 {
					name = fmt.Sprintf("%s.%d", nameFlag, n)
				}
				t = t.SubTree(t.Root(), name)
			}
			if err := tc.Add(t); err != nil {
				return fmt.Errorf("when adding trees from %q: %v", fn, err)
			}
			n++
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}
	if err := writeTrees(tc); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	return p.Write()
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// ReadTrees reads the trees of a file
// in any of the accepted formats.
func readTrees(r io.Reader, name string) (*timetree.Collection, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	br := bufio.NewReader(r)
	format := formatFlag
	if format == "" {
		var err error
		format, err = detectFormat(br)
		if err != nil {
			return nil, fmt.Errorf("while reading file %q: %v", name, err)
		}
	}

	age := int64(rootAge * timeScale)
	var c *timetree.Collection
	var err error
	switch format {
	case formatNexus:
		c, err = timetree.Nexus(br, age)
	case formatNewick:
		if nameFlag == "" {
			return nil, fmt.Errorf("file %q: flag --name required for newick trees", name)
		}
		c, err = timetree.Newick(br, nameFlag, age)
	default:
		c, err = timetree.ReadTSV(br)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// DetectFormat returns the format of a tree file
// from its first non-space characters.
func detectFormat(r *bufio.Reader) (string, error) {
	for i := 1; ; i++ {
		b, err := r.Peek(i)
		if len(b) < i {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return "", fmt.Errorf("unable to detect tree format: %v", err)
		}
		c := rune(b[i-1])
		if unicode.IsSpace(c) {
			continue
		}
		if c == '(' {
			return formatNewick, nil
		}
		if c != '#' {
			return formatTSV, nil
		}

		// a comment in a TSV file,
		// or a nexus header
		h, _ := r.Peek(i + len("nexus"))
		if strings.EqualFold(string(h[i-1:]), "#nexus") {
			return formatNexus, nil
		}
		return formatTSV, nil
	}
}

func writeTrees(tc *timetree.Collection) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
