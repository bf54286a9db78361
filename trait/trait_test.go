// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trait_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/fitch"
	"github.com/js-arias/traitrec/trait"
)

func TestData(t *testing.T) {
	d := newData()

	testData(t, "data", d)
}

func TestTSV(t *testing.T) {
	d := newData()

	var w bytes.Buffer
	if err := d.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	r := strings.NewReader(w.String())
	nd, err := trait.ReadTSV(r)
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testData(t, "tsv", nd)
}

func TestReadMetadata(t *testing.T) {
	in := `id,Geo,date
KU501215,BRA,2015-07-01
KX087101,BRA,2015-06-12
KX087101,COL,2015-06-12
MF438286,DOM,2016-03-03
MF801398,USA,2016-08-22
MF801399,,2016-08-22
`
	d, err := trait.ReadMetadata(strings.NewReader(in), ',', "id", "geo")
	if err != nil {
		t.Fatalf("unable to read metadata: %v", err)
	}
	testData(t, "metadata", d)

	if _, err := trait.ReadMetadata(strings.NewReader(in), ',', "id", "state"); err == nil {
		t.Errorf("expecting error for an undefined field")
	}
}

func TestHeaderSpaces(t *testing.T) {
	in := " Taxon \t Trait \nMF438286\tDOM\n"
	d, err := trait.ReadTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	if obs := d.Obs("MF438286"); !reflect.DeepEqual(obs, []string{"DOM"}) {
		t.Errorf("tsv: got %v, want %v", obs, []string{"DOM"})
	}

	meta := "id , Geo\nMF438286,Dominican  Republic\n"
	d, err = trait.ReadMetadata(strings.NewReader(meta), ',', " ID", "geo ")
	if err != nil {
		t.Fatalf("unable to read metadata: %v", err)
	}
	if obs := d.Obs("MF438286"); !reflect.DeepEqual(obs, []string{"Dominican Republic"}) {
		t.Errorf("metadata: got %v, want %v", obs, []string{"Dominican Republic"})
	}
}

func TestAssigner(t *testing.T) {
	d := newData()

	tests := []struct {
		name   string
		a      trait.Assigner
		taxon  string
		states []string
	}{
		{"observed", trait.Assigner{Data: d}, "MF438286", []string{"DOM"}},
		{"ambiguous", trait.Assigner{Data: d}, "KX087101", []string{"BRA", "COL"}},
		{"missing", trait.Assigner{Data: d}, "OQ000001", nil},
		{"sentinel", trait.Assigner{Data: d, Sentinel: "Other"}, "OQ000001", []string{"Other"}},
		{"separator", trait.Assigner{Data: d, Sep: "|"}, "MF801398|2016-08-22", []string{"USA"}},
		{"no separator", trait.Assigner{Data: d, Sentinel: "-"}, "MF801398|2016-08-22", []string{"-"}},
		{"no data", trait.Assigner{Sentinel: "?"}, "MF801398", []string{"?"}},
	}
	for _, test := range tests {
		if s := test.a.States(test.taxon); !reflect.DeepEqual(s, test.states) {
			t.Errorf("%s: got %v, want %v", test.name, s, test.states)
		}
	}
}

func TestReconstruction(t *testing.T) {
	c, err := timetree.ReadTSV(strings.NewReader(zikaTree))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tr := c.Tree("zika")
	if tr == nil {
		t.Fatalf("tree %q not found", "zika")
	}
	d := newData()

	if _, err := fitch.Reconstruct(tr, trait.Assigner{Data: d, Sep: "|"}, fitch.Deterministic{}); !errors.Is(err, fitch.ErrMissingTrait) {
		t.Errorf("without sentinel: error: got %v, want %v", err, fitch.ErrMissingTrait)
	}

	r, err := fitch.Reconstruct(tr, trait.Assigner{Data: d, Sentinel: "Other", Sep: "|"}, fitch.Deterministic{})
	if err != nil {
		t.Fatalf("with sentinel: unexpected error: %v", err)
	}
	if s := r.State(tr.Root()); s != "BRA" {
		t.Errorf("root: got %q, want %q", s, "BRA")
	}
}

const zikaTree = `tree	node	parent	age	taxon
zika	0	-1	30	
zika	1	0	20	
zika	2	1	0	KU501215|2015-07-01
zika	3	1	0	KX087101|2015-06-12
zika	4	0	10	
zika	5	4	0	MF438286|2016-03-03
zika	6	4	0	OQ000001|2016-05-05
`

func newData() *trait.Data {
	d := trait.New()

	d.Add("KU501215", "BRA")
	d.Add("KX087101", "BRA")
	d.Add("KX087101", "COL")
	d.Add("MF438286", "DOM")
	d.Add("MF801398", " USA ")
	return d
}

func testData(t testing.TB, name string, d *trait.Data) {
	t.Helper()

	taxa := []string{"KU501215", "KX087101", "MF438286", "MF801398"}
	if g := d.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	states := []string{"BRA", "COL", "DOM", "USA"}
	if g := d.States(); !reflect.DeepEqual(g, states) {
		t.Errorf("%s: states: got %v, want %v", name, g, states)
	}

	obs := map[string][]string{
		"KU501215": {"BRA"},
		"KX087101": {"BRA", "COL"},
		"MF438286": {"DOM"},
		"MF801398": {"USA"},
	}
	for tx, w := range obs {
		if g := d.Obs(tx); !reflect.DeepEqual(g, w) {
			t.Errorf("%s: observations for %q: got %v, want %v", name, tx, g, w)
		}
	}

	if !d.HasTrait("COL") {
		t.Errorf("%s: trait %q not found", name, "COL")
	}
	if d.HasTrait("col") {
		t.Errorf("%s: trait %q found, states are case sensitive", name, "col")
	}
}
