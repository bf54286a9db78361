// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add sample traits
// to a traitrec project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/project"
	"github.com/js-arias/traitrec/trait"
)

var Command = &command.Command{
	Usage: `add [-f|--file <trait-file>] [--filter] [--sep <separator>]
	[--metadata --id <field> --field <field> [--comma <char>]]
	<project-file> [<trait-file>...]`,
	Short: "add sample traits to a traitrec project",
	Long: `
Command add reads one or more tab-delimited files with trait data, and add the
trait observation to a traitrec project.

The first argument of the command is the name of the project file.

One or more trait files can be given as arguments. If no file is given the
traits will be read from the standard input.

By default, trait files are expected to be in the format described in
"traitrec help trait-files". With the flag --metadata, the files are read as
sample metadata tables (for example the metadata file of an outbreak dataset);
the flag --id indicates the field with the sample name (by default "id") and
the flag --field the field with the trait state (for example "geo" or
"region"). Metadata tables are comma delimited by default; use the flag
--comma to set a different delimiter (use "tab" for tab-delimited files).

By default, all sample-trait pairs will be added. If the flag --filter is
defined and there are trees in the project, then it will add only the traits
for the sample names present in the trees. If the terminal names of the trees
contain additional information after the sample name (for example
"KU501215|2015-07-01"), use the flag --sep to set the separator.

By default the trait file will be stored in the trait file currently defined
for the project. If the project does not have a trait file, a new one will be
created with the name 'traits.tab'. A different file name can be defined with
the flag --file or -f. If this flag is used, and there is a trait file already
defined, then the new file will be created, and used as traits file
(previously defined traits will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outFile string
var filterFlag bool
var metadataFlag bool
var idField string
var traitField string
var commaFlag string
var sepFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outFile, "file", "", "")
	c.Flags().StringVar(&outFile, "f", "", "")
	c.Flags().BoolVar(&filterFlag, "filter", false, "")
	c.Flags().BoolVar(&metadataFlag, "metadata", false, "")
	c.Flags().StringVar(&idField, "id", "id", "")
	c.Flags().StringVar(&traitField, "field", "", "")
	c.Flags().StringVar(&commaFlag, "comma", ",", "")
	c.Flags().StringVar(&sepFlag, "sep", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if metadataFlag && traitField == "" {
		return c.UsageError("flag --field must be defined when reading metadata")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	d, err := addTraitData(c.Stdin(), p, args[1:])
	if err != nil {
		return err
	}

	tf := p.Path(project.Traits)
	if tf == "" {
		tf = "traits.tab"
	}
	if outFile != "" {
		tf = outFile
	}
	if err := writeTraitData(tf, d); err != nil {
		return err
	}

	if p.Path(project.Traits) != tf {
		p.Add(project.Traits, tf)
		if err := p.Write(); err != nil {
			return err
		}
	}
	return nil
}

func addTraitData(r io.Reader, p *project.Project, files []string) (*trait.Data, error) {
	d := trait.New()

	tf := p.Path(project.Traits)
	if tf != "" {
		var err error
		d, err = p.Traits()
		if err != nil {
			return nil, err
		}
	}

	var filter map[string]bool
	if filterFlag {
		var err error
		filter, err = makeFilter(p)
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		files = append(files, "-")
	}
	for _, f := range files {
		td, err := readTraitData(r, f)
		if err != nil {
			return nil, err
		}

		for _, tx := range td.Taxa() {
			if filterFlag {
				if !filter[strings.ToLower(tx)] {
					continue
				}
			}
			obs := td.Obs(tx)
			for _, s := range obs {
				d.Add(tx, s)
			}
		}
	}
	return d, nil
}

func readTraitData(r io.Reader, name string) (*trait.Data, error) {
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

	var d *trait.Data
	var err error
	if metadataFlag {
		comma, cErr := parseComma(commaFlag)
		if cErr != nil {
			return nil, cErr
		}
		d, err = trait.ReadMetadata(r, comma, idField, traitField)
	} else {
		d, err = trait.ReadTSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return d, nil
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

func writeTraitData(name string, d *trait.Data) (err error) {
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

	if err := d.TSV(f); err != nil {
		return fmt.Errorf("while writing %q: %v", name, err)
	}
	return nil
}

func makeFilter(p *project.Project) (map[string]bool, error) {
	c, err := p.Trees()
	if err != nil {
		return nil, err
	}

	terms := make(map[string]bool)
	for _, tn := range c.Names() {
		t := c.Tree(tn)
		if t == nil {
			continue
		}
		for _, tax := range t.Terms() {
			if sepFlag != "" {
				tax, _, _ = strings.Cut(tax, sepFlag)
			}
			terms[strings.ToLower(tax)] = true
		}
	}

	return terms, nil
}
