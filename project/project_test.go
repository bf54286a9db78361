// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/traitrec/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Categories, "categories.tab"},
		{project.Colors, "colors.tab"},
		{project.Traits, "traits.tab"},
		{project.Trees, "trees.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := filepath.Join(t.TempDir(), "project.tab")

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	if prev := np.Add(project.Colors, ""); prev != "colors.tab" {
		t.Errorf("remove colors: got previous %q, want %q", prev, "colors.tab")
	}
	if path := np.Path(project.Colors); path != "" {
		t.Errorf("removed colors: got path %q", path)
	}
}

func TestDatasets(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"trees.tab": `tree	node	parent	age	taxon
outbreak	0	-1	10	
outbreak	1	0	0	MN908947
outbreak	2	0	0	MT019529
`,
		"traits.tab": `taxon	trait
MN908947	Asia
MT019529	Europe
`,
		"categories.tab": `state	category
Asia	Asia
Europe	Other
`,
		"colors.tab": `key	color
Asia	#cccccc
`,
	}
	p := project.New()
	p.SetName(filepath.Join(dir, "project.tab"))
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write %q: %v", name, err)
		}
	}

	// undefined datasets
	if _, err := p.Trees(); err == nil {
		t.Errorf("trees: expecting error for an undefined dataset")
	}
	if _, err := p.Traits(); err == nil {
		t.Errorf("traits: expecting error for an undefined dataset")
	}
	if m, err := p.Categories(); err != nil || m != nil {
		t.Errorf("categories: got %v (error %v), want nil merger", m, err)
	}
	if k, err := p.Colors(); err != nil || len(k.Keys()) != 0 {
		t.Errorf("colors: got %v (error %v), want an empty key", k, err)
	}

	p.Add(project.Trees, filepath.Join(dir, "trees.tab"))
	p.Add(project.Traits, filepath.Join(dir, "traits.tab"))
	p.Add(project.Categories, filepath.Join(dir, "categories.tab"))
	p.Add(project.Colors, filepath.Join(dir, "colors.tab"))

	tc, err := p.Trees()
	if err != nil {
		t.Fatalf("trees: %v", err)
	}
	if names := tc.Names(); !reflect.DeepEqual(names, []string{"outbreak"}) {
		t.Errorf("trees: got %v, want %v", names, []string{"outbreak"})
	}

	d, err := p.Traits()
	if err != nil {
		t.Fatalf("traits: %v", err)
	}
	if st := d.States(); !reflect.DeepEqual(st, []string{"Asia", "Europe"}) {
		t.Errorf("traits: got %v, want %v", st, []string{"Asia", "Europe"})
	}

	m, err := p.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if c, err := m.Category("Europe"); err != nil || c != "Other" {
		t.Errorf("categories: got %q (error %v), want %q", c, err, "Other")
	}

	k, err := p.Colors()
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	if _, ok := k.Color("Asia"); !ok {
		t.Errorf("colors: color for %q not found", "Asia")
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
