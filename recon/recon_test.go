// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package recon_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/category"
	"github.com/js-arias/traitrec/fitch"
	"github.com/js-arias/traitrec/recon"
	"github.com/js-arias/traitrec/trait"
)

const h5n1Tree = `tree	node	parent	age	taxon
h5n1	0	-1	100	
h5n1	1	0	80	
h5n1	2	1	0	PP755589
h5n1	3	1	0	PP755590
h5n1	4	0	50	
h5n1	5	4	0	PP755591
h5n1	6	4	0	SRR28752446
`

func newParam(cats category.Mapper) recon.Param {
	d := trait.New()
	d.Add("PP755589", "CA")
	d.Add("PP755590", "CA")
	d.Add("PP755591", "TX")

	return recon.Param{
		Tips: trait.Assigner{Data: d, Sentinel: "-"},
		Tie:  fitch.Deterministic{},
		Cats: cats,
	}
}

func readTree(t testing.TB) *timetree.Tree {
	t.Helper()

	c, err := timetree.ReadTSV(strings.NewReader(h5n1Tree))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tr := c.Tree("h5n1")
	if tr == nil {
		t.Fatalf("tree %q not found", "h5n1")
	}
	return tr
}

func TestReconstruct(t *testing.T) {
	tr := readTree(t)

	m := category.New()
	m.Add("CA", "USA")
	m.Add("TX", "USA")
	m.Add("-", "unknown")

	rt, err := recon.Reconstruct(tr, newParam(m))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.Name != "h5n1" {
		t.Errorf("name: got %q, want %q", rt.Name, "h5n1")
	}
	if len(rt.Nodes) != len(tr.Nodes()) {
		t.Fatalf("nodes: got %d, want %d", len(rt.Nodes), len(tr.Nodes()))
	}

	for _, n := range rt.Nodes {
		if tr.IsTerm(n.ID) && n.Taxon == "" {
			t.Errorf("node %d: terminal without taxon name", n.ID)
		}
		w := "USA"
		if n.State == "-" {
			w = "unknown"
		}
		if n.Category != w {
			t.Errorf("node %d: state %q: category %q, want %q", n.ID, n.State, n.Category, w)
		}
	}

	// the root is {-, CA} or {CA, TX, -}: in both cases "-" is the first state
	root := rt.Nodes[tr.Root()]
	if root.State != "-" {
		t.Errorf("root: got %q, want %q", root.State, "-")
	}
	if len(rt.Ties) == 0 {
		t.Errorf("expecting ties")
	}

	cats := rt.Categories()
	if cats["USA"]+cats["unknown"] != len(rt.Nodes) {
		t.Errorf("categories: got %v, total %d nodes", cats, len(rt.Nodes))
	}
	ch := rt.Changes()
	if ch[recon.Change{From: "unknown", To: "USA"}] == 0 {
		t.Errorf("changes: got %v, expecting a change from %q to %q", ch, "unknown", "USA")
	}
}

func TestUnmappedCategory(t *testing.T) {
	tr := readTree(t)

	m := category.New()
	m.Add("CA", "USA")
	m.Add("TX", "USA")

	if _, err := recon.Reconstruct(tr, newParam(m)); !errors.Is(err, category.ErrUnmapped) {
		t.Errorf("error: got %v, want %v", err, category.ErrUnmapped)
	}
}

func TestMetadataStates(t *testing.T) {
	meta := `id,state,region
PP755589,Cross  River,SS
PP755590, Lagos,SW
`
	d, err := trait.ReadMetadata(strings.NewReader(meta), ',', "id", "state")
	if err != nil {
		t.Fatalf("unable to read traits: %v", err)
	}
	m, err := category.FromMetadata(strings.NewReader(meta), ',', "state", "region")
	if err != nil {
		t.Fatalf("unable to read categories: %v", err)
	}

	cats, err := category.Merge(m, d.States())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SS", "SW"}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("categories: got %v, want %v", cats, want)
	}
}

func TestTSV(t *testing.T) {
	tr := readTree(t)
	rt, err := recon.Reconstruct(tr, newParam(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var w bytes.Buffer
	if err := recon.TSV(&w, []*recon.Tree{rt}); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	trees, err := recon.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}
	nt, ok := trees["h5n1"]
	if !ok {
		t.Fatalf("tree %q not found", "h5n1")
	}
	if !reflect.DeepEqual(nt.Nodes, rt.Nodes) {
		t.Errorf("nodes: got %v, want %v", nt.Nodes, rt.Nodes)
	}
}

func TestReadTSVError(t *testing.T) {
	tests := map[string]string{
		"missing field": "tree\tnode\tparent\ttaxon\tset\tstate\n",
		"duplicated": `tree	node	parent	taxon	set	state	category
t	0	-1		A	A	A
t	0	-1		A	A	A
`,
		"gap": `tree	node	parent	taxon	set	state	category
t	0	-1		A	A	A
t	2	0	x	A	A	A
`,
		"bad node": `tree	node	parent	taxon	set	state	category
t	root	-1		A	A	A
`,
		"self parent": `tree	node	parent	taxon	set	state	category
t	0	-1		A	A	A
t	1	1	x	A	A	A
`,
		"negative parent": `tree	node	parent	taxon	set	state	category
t	0	-1		A	A	A
t	1	-7	x	A	A	A
`,
		"two roots": `tree	node	parent	taxon	set	state	category
t	0	-1	x	A	A	A
t	1	-1	y	A	A	A
`,
		"no root": `tree	node	parent	taxon	set	state	category
t	0	1		A	A	A
t	1	0		A	A	A
`,
		"cycle": `tree	node	parent	taxon	set	state	category
t	0	-1		A	A	A
t	1	0	x	A	A	A
t	2	3		A	A	A
t	3	2		A	A	A
`,
	}
	for name, in := range tests {
		if _, err := recon.ReadTSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
