// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/js-arias/timetree"
	"github.com/js-arias/traitrec/colorkey"
	"github.com/js-arias/traitrec/recon"
)

const yStep = 12

type node struct {
	x     float64
	y     int
	topY  int
	botY  int
	terms int
	color color.RGBA

	id  int
	tax string
	age float64

	anc  *node
	desc []*node
}

type legend struct {
	cat   string
	color color.RGBA
}

type svgTree struct {
	y      int
	x      float64
	taxSz  int
	root   *node
	legend []legend
}

func copyTree(t *timetree.Tree, rt *recon.Tree, keys *colorkey.Key, width float64) svgTree {
	s := svgTree{}
	s.root = s.copyNode(t, rt, keys, t.Root(), nil)
	s.root.ladderize()

	var maxAge float64
	for _, id := range t.Nodes() {
		if a := s.root.age - float64(t.Age(id)); a > maxAge {
			maxAge = a
		}
	}
	xStep := width
	if maxAge > 0 {
		xStep = width / maxAge
	}

	if !noLegend {
		seen := make(map[string]bool)
		for _, n := range rt.Nodes {
			if seen[n.Category] {
				continue
			}
			seen[n.Category] = true
			c, _ := keys.Color(n.Category)
			s.legend = append(s.legend, legend{cat: n.Category, color: c})
			if len(n.Category)+2 > s.taxSz {
				s.taxSz = len(n.Category) + 2
			}
		}
		slices.SortFunc(s.legend, func(a, b legend) int {
			return cmp.Compare(a.cat, b.cat)
		})
		s.y = len(s.legend) + 1
	}

	s.prepare(s.root, xStep)
	s.y = s.y * yStep
	if noNames {
		s.taxSz = 0
	}
	return s
}

func (s *svgTree) copyNode(t *timetree.Tree, rt *recon.Tree, keys *colorkey.Key, id int, anc *node) *node {
	c, _ := keys.Color(rt.Nodes[id].Category)
	n := &node{
		id:    id,
		tax:   t.Taxon(id),
		age:   float64(t.Age(id)),
		anc:   anc,
		color: c,
	}
	if len(n.tax) > s.taxSz {
		s.taxSz = len(n.tax)
	}

	children := t.Children(id)
	if len(children) == 0 {
		n.terms = 1
		return n
	}
	for _, cID := range children {
		d := s.copyNode(t, rt, keys, cID, n)
		n.desc = append(n.desc, d)
		n.terms += d.terms
	}
	return n
}

// Ladderize sorts the descendants of each node
// so smaller clades are drawn first.
func (n *node) ladderize() {
	slices.SortStableFunc(n.desc, func(a, b *node) int {
		return cmp.Compare(a.terms, b.terms)
	})
	for _, d := range n.desc {
		d.ladderize()
	}
}

func (s *svgTree) prepare(n *node, xStep float64) {
	n.x = (s.root.age-n.age)*xStep + 10
	if s.x < n.x {
		s.x = n.x
	}

	if n.desc == nil {
		n.y = s.y*yStep + 5
		s.y += 1
		return
	}

	botY := 0
	topY := math.MaxInt
	for _, d := range n.desc {
		s.prepare(d, xStep)
		if d.y < topY {
			topY = d.y
		}
		if d.y > botY {
			botY = d.y
		}
	}
	n.topY = topY
	n.botY = botY
	n.y = topY + (botY-topY)/2
}

func (s *svgTree) draw(w io.Writer) error {
	fmt.Fprintf(w, "%s", xml.Header)
	e := xml.NewEncoder(w)
	svg := xml.StartElement{
		Name: xml.Name{Local: "svg"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "height"}, Value: strconv.Itoa(s.y + 5)},
			// assume that each character has 6 pixels wide
			{Name: xml.Name{Local: "width"}, Value: strconv.Itoa(int(s.x) + s.taxSz*6 + 20)},
			{Name: xml.Name{Local: "xmlns"}, Value: "http://www.w3.org/2000/svg"},
		},
	}
	e.EncodeToken(svg)

	g := xml.StartElement{
		Name: xml.Name{Local: "g"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "stroke-width"}, Value: "2"},
			{Name: xml.Name{Local: "stroke"}, Value: "black"},
			{Name: xml.Name{Local: "stroke-linecap"}, Value: "round"},
			{Name: xml.Name{Local: "font-family"}, Value: "Verdana"},
			{Name: xml.Name{Local: "font-size"}, Value: "10"},
		},
	}
	e.EncodeToken(g)

	s.drawLegend(e)
	s.root.draw(e)
	if !noNames {
		s.root.label(e)
	}

	e.EncodeToken(g.End())
	e.EncodeToken(svg.End())
	if err := e.Flush(); err != nil {
		return err
	}
	return nil
}

func (s *svgTree) drawLegend(e *xml.Encoder) {
	for i, l := range s.legend {
		y := i*yStep + 5
		rect := xml.StartElement{
			Name: xml.Name{Local: "rect"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: "10"},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(y)},
				{Name: xml.Name{Local: "width"}, Value: "10"},
				{Name: xml.Name{Local: "height"}, Value: "8"},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "fill"}, Value: rgb(l.color)},
			},
		}
		e.EncodeToken(rect)
		e.EncodeToken(rect.End())

		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: "25"},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(y + 8)},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(l.cat))
		e.EncodeToken(tx.End())
	}
}

func (n node) draw(e *xml.Encoder) {
	// horizontal line
	ln := xml.StartElement{
		Name: xml.Name{Local: "line"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "x1"}, Value: strconv.Itoa(int(n.x - 5))},
			{Name: xml.Name{Local: "y1"}, Value: strconv.Itoa(int(n.y))},
			{Name: xml.Name{Local: "x2"}, Value: strconv.Itoa(int(n.x))},
			{Name: xml.Name{Local: "y2"}, Value: strconv.Itoa(int(n.y))},
			{Name: xml.Name{Local: "stroke"}, Value: rgb(n.color)},
		},
	}
	if n.anc != nil {
		ln.Attr[0].Value = strconv.Itoa(int(n.anc.x))
	}
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	if n.desc == nil {
		return
	}

	// vertical line
	ln.Attr[0].Value = ln.Attr[2].Value
	ln.Attr[1].Value = strconv.Itoa(int(n.topY))
	ln.Attr[3].Value = strconv.Itoa(int(n.botY))
	e.EncodeToken(ln)
	e.EncodeToken(ln.End())

	for _, d := range n.desc {
		d.draw(e)
	}
}

func (n node) label(e *xml.Encoder) {
	if n.desc == nil {
		tx := xml.StartElement{
			Name: xml.Name{Local: "text"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "x"}, Value: strconv.Itoa(int(n.x + 10))},
				{Name: xml.Name{Local: "y"}, Value: strconv.Itoa(int(n.y + 5))},
				{Name: xml.Name{Local: "stroke-width"}, Value: "0"},
				{Name: xml.Name{Local: "fill"}, Value: rgb(n.color)},
			},
		}
		e.EncodeToken(tx)
		e.EncodeToken(xml.CharData(n.tax))
		e.EncodeToken(tx.End())
	}

	for _, d := range n.desc {
		d.label(e)
	}
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}
