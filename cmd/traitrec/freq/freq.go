// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package freq implements a command to count
// the frequency of the display categories
// in reconstructed trees.
package freq

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/traitrec/colorkey"
	"github.com/js-arias/traitrec/recon"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `freq [--changes] [--summary]
	[--plot <image-file>] [--key <key-file>]
	<reconstruction-file>`,
	Short: "count categories in reconstructed trees",
	Long: `
Command freq reads a reconstruction file produced with 'traitrec rec' and
prints the number of nodes assigned to each display category in each tree.

The argument of the command is the name of the reconstruction file.

The output is a tab-delimited table with the fields "tree", "category",
"nodes", and "proportion".

If the flag --changes is set, the number of category changes along the
branches of each tree will be reported instead, with the fields "tree",
"from", "to", and "changes".

If the flag --summary is set, the mean and standard deviation of the
proportion of nodes in each category, over all the trees, will be reported,
with the fields "category", "mean", and "sd".

If the flag --plot is set, a stacked bar chart with the proportion of nodes in
each category for each tree will be saved in the indicated file. The format of
the image is defined by the extension of the file name (for example ".png",
".svg", or ".pdf"). The flag --key can be used to define a color key file with
the colors of the categories. Categories without a color will be assigned a
color from the iridescent scheme of Paul Tol.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var changesFlag bool
var summaryFlag bool
var plotFile string
var keyFile string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&changesFlag, "changes", false, "")
	c.Flags().BoolVar(&summaryFlag, "summary", false, "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
	c.Flags().StringVar(&keyFile, "key", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting reconstruction file")
	}
	if changesFlag && summaryFlag {
		return c.UsageError("flags --changes and --summary are incompatible")
	}

	rec, err := readRec(args[0])
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return fmt.Errorf("file %q: no reconstructed trees", args[0])
	}

	names := make([]string, 0, len(rec))
	for n := range rec {
		names = append(names, n)
	}
	slices.Sort(names)

	switch {
	case changesFlag:
		err = writeChanges(c.Stdout(), names, rec)
	case summaryFlag:
		err = writeSummary(c.Stdout(), names, rec)
	default:
		err = writeFreq(c.Stdout(), names, rec)
	}
	if err != nil {
		return err
	}

	if plotFile != "" {
		keys := colorkey.New()
		if keyFile != "" {
			keys, err = readKey(keyFile)
			if err != nil {
				return err
			}
		}
		if err := makePlot(names, rec, keys); err != nil {
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

func readKey(name string) (*colorkey.Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := colorkey.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return k, nil
}

// Categories returns the categories used
// in a set of reconstructed trees.
func categories(rec map[string]*recon.Tree) []string {
	var cats []string
	for _, t := range rec {
		for c := range t.Categories() {
			if slices.Contains(cats, c) {
				continue
			}
			cats = append(cats, c)
		}
	}
	slices.Sort(cats)
	return cats
}

func writeFreq(w io.Writer, names []string, rec map[string]*recon.Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"tree", "category", "nodes", "proportion"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, n := range names {
		t := rec[n]
		cats := t.Categories()
		ls := make([]string, 0, len(cats))
		for c := range cats {
			ls = append(ls, c)
		}
		slices.Sort(ls)

		for _, c := range ls {
			row := []string{
				n,
				c,
				strconv.Itoa(cats[c]),
				strconv.FormatFloat(float64(cats[c])/float64(len(t.Nodes)), 'f', 6, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func writeChanges(w io.Writer, names []string, rec map[string]*recon.Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"tree", "from", "to", "changes"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, n := range names {
		ch := rec[n].Changes()
		ls := make([]recon.Change, 0, len(ch))
		for c := range ch {
			ls = append(ls, c)
		}
		slices.SortFunc(ls, func(a, b recon.Change) int {
			return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
		})

		for _, c := range ls {
			row := []string{
				n,
				c.From,
				c.To,
				strconv.Itoa(ch[c]),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func writeSummary(w io.Writer, names []string, rec map[string]*recon.Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"category", "mean", "sd"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	props := proportions(names, rec)
	for _, c := range categories(rec) {
		mean, sd := stat.MeanStdDev(props[c], nil)
		if len(names) < 2 {
			sd = 0
		}
		row := []string{
			c,
			strconv.FormatFloat(mean, 'f', 6, 64),
			strconv.FormatFloat(sd, 'f', 6, 64),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Proportions returns the proportion of nodes in each category
// for each tree,
// in the order of the names.
func proportions(names []string, rec map[string]*recon.Tree) map[string][]float64 {
	cats := categories(rec)
	props := make(map[string][]float64, len(cats))
	for _, c := range cats {
		props[c] = make([]float64, len(names))
	}
	for i, n := range names {
		t := rec[n]
		for c, v := range t.Categories() {
			props[c][i] = float64(v) / float64(len(t.Nodes))
		}
	}
	return props
}

func makePlot(names []string, rec map[string]*recon.Tree, keys *colorkey.Key) error {
	p := plot.New()
	p.Y.Label.Text = "nodes (proportion)"
	p.Legend.Top = true

	cats := categories(rec)
	keys.Palette(cats)
	props := proportions(names, rec)

	w := vg.Points(10)
	var prev *plotter.BarChart
	for _, c := range cats {
		bars, err := plotter.NewBarChart(plotter.Values(props[c]), w)
		if err != nil {
			return fmt.Errorf("while building chart: %v", err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color, _ = keys.Color(c)

		if prev != nil {
			bars.StackOn(prev)
		}
		p.Add(bars)
		p.Legend.Add(c, bars)
		prev = bars
	}
	p.NominalX(names...)

	if err := p.Save(5*vg.Inch, 3*vg.Inch, plotFile); err != nil {
		return err
	}
	return nil
}
