// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colors implements a command to set
// the colors of the display categories
// in a traitrec project.
package colors

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/colorkey"
	"github.com/js-arias/traitrec/project"
)

var Command = &command.Command{
	Usage: `colors [-f|--file <key-file>] [--palette]
	<project-file> [<input-file>]`,
	Short: "set the colors of display categories",
	Long: `
Command colors reads a color key file, as described in
"traitrec help color-keys", and sets it as the color key of a traitrec
project.

The first argument of the command is the name of the project file. The second
argument is the input file. If no file is given the color key will be read
from the standard input. If the flag --palette is set, and no input file is
given, the color key of the project will be used as input.

If the flag --palette is set, every display category of the project (or every
trait state, if the project has no category file) without a color will be
assigned a color from the iridescent scheme of Paul Tol, so the colors can be
edited later.

By default the color key will be stored in the file 'colors.tab', or the color
key file currently defined for the project. A different file name can be
defined with the flag --file or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var outFile string
var paletteFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&outFile, "file", "", "")
	c.Flags().StringVar(&outFile, "f", "", "")
	c.Flags().BoolVar(&paletteFlag, "palette", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	var k *colorkey.Key
	if len(args) < 2 && paletteFlag {
		k, err = p.Colors()
	} else {
		in := "-"
		if len(args) > 1 {
			in = args[1]
		}
		k, err = readKey(c.Stdin(), in)
	}
	if err != nil {
		return err
	}

	if paletteFlag {
		cats, err := projectCategories(p)
		if err != nil {
			return err
		}
		k.Palette(cats)
	}

	kf := p.Path(project.Colors)
	if kf == "" {
		kf = "colors.tab"
	}
	if outFile != "" {
		kf = outFile
	}
	if err := writeKey(kf, k); err != nil {
		return err
	}

	if p.Path(project.Colors) != kf {
		p.Add(project.Colors, kf)
		if err := p.Write(); err != nil {
			return err
		}
	}
	return nil
}

// ProjectCategories returns the display categories
// defined in a project.
func projectCategories(p *project.Project) ([]string, error) {
	m, err := p.Categories()
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m.Categories(), nil
	}

	d, err := p.Traits()
	if err != nil {
		return nil, fmt.Errorf("undefined display categories: %v", err)
	}
	return d.States(), nil
}

func readKey(r io.Reader, name string) (*colorkey.Key, error) {
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

	k, err := colorkey.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return k, nil
}

func writeKey(name string, k *colorkey.Key) (err error) {
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

	if err := k.TSV(f); err != nil {
		return fmt.Errorf("while writing %q: %v", name, err)
	}
	return nil
}
