// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package colorkey_test

import (
	"bytes"
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/traitrec/colorkey"
)

const keyFile = `key	color	comment
Asia	204,204,204	light gray
Europe	#ff0000	red
North America	0, 0, 0	black
`

func TestReadTSV(t *testing.T) {
	k, err := colorkey.ReadTSV(strings.NewReader(keyFile))
	if err != nil {
		t.Fatalf("unable to read key: %v", err)
	}
	testKey(t, "read", k)

	var w bytes.Buffer
	if err := k.TSV(&w); err != nil {
		t.Fatalf("unable to write key: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nk, err := colorkey.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read key: %v", err)
	}
	testKey(t, "tsv", nk)
}

func TestReadTSVError(t *testing.T) {
	tests := map[string]string{
		"no color":     "key\nAsia\n",
		"bad hex":      "key\tcolor\nAsia\t#zzzzzz\n",
		"short hex":    "key\tcolor\nAsia\t#fff\n",
		"two values":   "key\tcolor\nAsia\t1,2\n",
		"out of range": "key\tcolor\nAsia\t1,2,300\n",
	}
	for name, in := range tests {
		if _, err := colorkey.ReadTSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestPalette(t *testing.T) {
	k, err := colorkey.ReadTSV(strings.NewReader(keyFile))
	if err != nil {
		t.Fatalf("unable to read key: %v", err)
	}

	k.Palette([]string{"Europe", "Other", "Africa", "Other"})
	keys := []string{"Africa", "Asia", "Europe", "North America", "Other"}
	if g := k.Keys(); !reflect.DeepEqual(g, keys) {
		t.Errorf("keys: got %v, want %v", g, keys)
	}

	// defined colors are kept
	if c, _ := k.Color("Europe"); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("color %q: got %v, want %v", "Europe", c, color.RGBA{255, 0, 0, 255})
	}
	a, _ := k.Color("Africa")
	o, _ := k.Color("Other")
	if a == o {
		t.Errorf("categories %q and %q with the same color %v", "Africa", "Other", a)
	}
	if a.A != 255 || o.A != 255 {
		t.Errorf("palette colors must be opaque")
	}
}

func testKey(t testing.TB, name string, k *colorkey.Key) {
	t.Helper()

	colors := map[string]color.RGBA{
		"Asia":          {204, 204, 204, 255},
		"Europe":        {255, 0, 0, 255},
		"North America": {0, 0, 0, 255},
	}
	for cat, w := range colors {
		c, ok := k.Color(cat)
		if !ok {
			t.Errorf("%s: color for %q not found", name, cat)
			continue
		}
		if c != w {
			t.Errorf("%s: color for %q: got %v, want %v", name, cat, c, w)
		}
	}
	if _, ok := k.Color("Oceania"); ok {
		t.Errorf("%s: unexpected color for %q", name, "Oceania")
	}
}
