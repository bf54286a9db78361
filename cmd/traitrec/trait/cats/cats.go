// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cats implements a command to set
// the display categories of trait states
// in a traitrec project.
package cats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/category"
	"github.com/js-arias/traitrec/project"
)

var Command = &command.Command{
	Usage: `cats [-f|--file <category-file>]
	[--metadata --from <field> --to <field> [--comma <char>]]
	[--keep <state>,...]
	<project-file> [<input-file>]`,
	Short: "set the display categories of trait states",
	Long: `
Command cats reads a file with the display category of each trait state, and
sets it as the category file of a traitrec project.

The first argument of the command is the name of the project file. The second
argument is the input file. If no file is given the categories will be read
from the standard input.

By default, the input file is expected to be a category file, as described in
"traitrec help category-files". With the flag --metadata, the input is read as
a sample metadata table, using the field given with the flag --from as the
trait state, and the field given with the flag --to as its category (for
example "--from state --to region"). If a state is found with two different
categories, the command will fail. Metadata tables are comma delimited by
default; use the flag --comma to set a different delimiter (use "tab" for
tab-delimited files).

With the flag --keep, a comma separated list of states can be given; these
states will be used as its own category (for example, to display a particular
state as a pseudo-region).

By default the categories will be stored in the file 'categories.tab', or the
category file currently defined for the project. A different file name can be
defined with the flag --file or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outFile string
var metadataFlag bool
var fromField string
var toField string
var commaFlag string
var keepFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outFile, "file", "", "")
	c.Flags().StringVar(&outFile, "f", "", "")
	c.Flags().BoolVar(&metadataFlag, "metadata", false, "")
	c.Flags().StringVar(&fromField, "from", "", "")
	c.Flags().StringVar(&toField, "to", "", "")
	c.Flags().StringVar(&commaFlag, "comma", ",", "")
	c.Flags().StringVar(&keepFlag, "keep", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if metadataFlag && (fromField == "" || toField == "") {
		return c.UsageError("flags --from and --to must be defined when reading metadata")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	in := "-"
	if len(args) > 1 {
		in = args[1]
	}
	m, err := readCategories(c.Stdin(), in)
	if err != nil {
		return err
	}

	if keepFlag != "" {
		for _, s := range strings.Split(keepFlag, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			m.Add(s, s)
		}
	}

	cf := p.Path(project.Categories)
	if cf == "" {
		cf = "categories.tab"
	}
	if outFile != "" {
		cf = outFile
	}
	if err := writeCategories(cf, m); err != nil {
		return err
	}

	if p.Path(project.Categories) != cf {
		p.Add(project.Categories, cf)
		if err := p.Write(); err != nil {
			return err
		}
	}
	return nil
}

func readCategories(r io.Reader, name string) (*category.Merger, error) {
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

	var m *category.Merger
	var err error
	if metadataFlag {
		comma, cErr := parseComma(commaFlag)
		if cErr != nil {
			return nil, cErr
		}
		m, err = category.FromMetadata(r, comma, fromField, toField)
	} else {
		m, err = category.ReadTSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return m, nil
}

func writeCategories(name string, m *category.Merger) (err error) {
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

	if err := m.TSV(f); err != nil {
		return fmt.Errorf("while writing %q: %v", name, err)
	}
	return nil
}

func parseComma(s string) (rune, error) {
	switch s {
	case "tab", "\\t":
		return '\t', nil
	case "":
		return ',', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid field delimiter %q", s)
	}
	return r[0], nil
}
