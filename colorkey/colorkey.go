// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colorkey implements a simple color key
// for display categories.
package colorkey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
)

// Key stores the color values
// for a category.
type Key struct {
	color map[string]color.RGBA
}

// New creates a new empty color key.
func New() *Key {
	return &Key{
		color: make(map[string]color.RGBA),
	}
}

// Color returns the color associated with a given category.
// If no color is defined for the category,
// it will return transparent black.
func (k *Key) Color(cat string) (color.RGBA, bool) {
	c, ok := k.color[cat]
	if !ok {
		return color.RGBA{0, 0, 0, 0}, false
	}
	return c, true
}

// Set sets the color of a category.
func (k *Key) Set(cat string, c color.Color) {
	r, g, b, _ := c.RGBA()
	k.color[cat] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

// Keys returns the categories with a defined color.
func (k *Key) Keys() []string {
	keys := make([]string, 0, len(k.color))
	for c := range k.color {
		keys = append(keys, c)
	}
	slices.Sort(keys)
	return keys
}

// Palette sets a color to each category in a list
// that does not have a color.
// Colors are taken from the iridescent scheme of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
func (k *Key) Palette(cats []string) {
	var missing []string
	for _, c := range cats {
		if _, ok := k.color[c]; ok {
			continue
		}
		if slices.Contains(missing, c) {
			continue
		}
		missing = append(missing, c)
	}
	slices.Sort(missing)

	for i, c := range missing {
		v := 0.5
		if len(missing) > 1 {
			v = float64(i) / float64(len(missing)-1)
		}
		k.Set(c, blind.Sequential(blind.Iridescent, v))
	}
}

// ReadTSV reads a key file used to define the colors
// for display categories.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-key	the category
//	-color	an RGB value separated by commas,
//		for example "125,132,148",
//		or an hexadecimal RGB value,
//		for example "#7d8494".
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	key	color	comment
//	Asia	204,204,204	light gray
//	Europe	#ff0000	red
//	North America	0,0,0	black
//	Other	255,165,0	orange
func ReadTSV(r io.Reader) (*Key, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"key", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "key"
		cat := strings.TrimSpace(row[fields[f]])
		if cat == "" {
			continue
		}

		f = "color"
		c, err := parseColor(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		k.color[cat] = c
	}
	return k, nil
}

// TSV writes a color key as a TSV file.
func (k *Key) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"key", "color"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, cat := range k.Keys() {
		c := k.color[cat]
		row := []string{
			cat,
			fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B),
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

func parseColor(v string) (color.RGBA, error) {
	v = strings.TrimSpace(v)
	if hex, ok := strings.CutPrefix(v, "#"); ok {
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("invalid hexadecimal color %q", v)
		}
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hexadecimal color %q: %v", v, err)
		}
		return color.RGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 255}, nil
	}

	val := strings.Split(v, ",")
	if len(val) != 3 {
		return color.RGBA{}, fmt.Errorf("found %d values, want 3", len(val))
	}

	var rgb [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		c, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("[%s value]: %v", name, err)
		}
		if c < 0 || c > 255 {
			return color.RGBA{}, fmt.Errorf("[%s value]: invalid value %d", name, c)
		}
		rgb[i] = uint8(c)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
