// Package sketch renders a drawing tree as a standalone, hand-drawn SVG.
package sketch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/buffos/go-roadmap/internal/drawing"
)

// Namespace is declared on the root element so the output stands alone.
const Namespace = "http://www.w3.org/2000/svg"

// DefaultSeed is used when an Encoder has no seed of its own.
const DefaultSeed = 42

// Encoder turns a tree into SVG. Sketched primitives are perturbed with a
// generator seeded from Seed, so equal trees and seeds give equal bytes.
type Encoder struct {
	Seed uint64
}

// Encode returns the SVG document for tree.
func (e Encoder) Encode(tree *drawing.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the SVG document for tree to w.
func (e Encoder) Write(w io.Writer, tree *drawing.Tree) error {
	if tree == nil {
		return errors.New("encoding svg: nil tree")
	}
	seed := e.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	enc := &svgWriter{gen: newGenerator(seed), family: tree.FontFamily}

	var body bytes.Buffer
	fmt.Fprintf(&body, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="%s">`,
		num(tree.Width), num(tree.Height), num(tree.Width), num(tree.Height), Namespace)
	body.WriteString("\n")

	if tree.Grid != nil {
		g := tree.Grid
		body.WriteString("  <defs>\n")
		fmt.Fprintf(&body, `    <pattern id="%s" width="%s" height="%s" patternUnits="userSpaceOnUse">`,
			escapeXML(g.ID), num(g.Size), num(g.Size))
		body.WriteString("\n")
		fmt.Fprintf(&body, `      <line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
			num(g.Size), num(g.Size), num(g.Size), escapeXML(g.Stroke), num(g.StrokeWidth))
		body.WriteString("\n")
		fmt.Fprintf(&body, `      <line x1="%s" y1="0" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
			num(g.Size), num(g.Size), num(g.Size), escapeXML(g.Stroke), num(g.StrokeWidth))
		body.WriteString("\n    </pattern>\n  </defs>\n")
	}
	if tree.FontImport != "" {
		fmt.Fprintf(&body, "  <style>@import url('%s');</style>\n", escapeXML(tree.FontImport))
	}

	for _, n := range tree.Nodes {
		enc.node(&body, n, 1)
	}
	body.WriteString("</svg>\n")

	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

type svgWriter struct {
	gen    *generator
	family string
}

func (s *svgWriter) node(buf *bytes.Buffer, n *drawing.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case drawing.KindGroup:
		if n.ID != "" {
			fmt.Fprintf(buf, "%s<g id=\"%s\">\n", indent, escapeXML(n.ID))
		} else {
			fmt.Fprintf(buf, "%s<g>\n", indent)
		}
		for _, c := range n.Children {
			s.node(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	case drawing.KindText:
		s.text(buf, indent, n)
	default:
		if n.Style.Plain {
			s.plain(buf, indent, n)
			return
		}
		s.sketched(buf, indent, n)
	}
}

func (s *svgWriter) plain(buf *bytes.Buffer, indent string, n *drawing.Node) {
	paint := plainPaint(n.Style)
	switch n.Kind {
	case drawing.KindRect:
		rx := ""
		if n.Rx > 0 {
			rx = fmt.Sprintf(` rx="%s"`, num(n.Rx))
		}
		fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n",
			indent, num(n.X), num(n.Y), num(n.W), num(n.H), rx, paint)
	case drawing.KindLine:
		fmt.Fprintf(buf, `%s<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			indent, num(n.X), num(n.Y), num(n.X2), num(n.Y2), paint)
	case drawing.KindCircle:
		fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"%s/>`+"\n",
			indent, num(n.X), num(n.Y), num(n.R), paint)
	case drawing.KindPath:
		fmt.Fprintf(buf, `%s<polyline points="%s" fill="none"%s/>`+"\n", indent, points(n.Points), paint)
	case drawing.KindPolygon:
		fmt.Fprintf(buf, `%s<polygon points="%s"%s/>`+"\n", indent, points(n.Points), paint)
	}
}

func plainPaint(st drawing.Style) string {
	var sb strings.Builder
	if st.Fill != "" {
		fmt.Fprintf(&sb, ` fill="%s"`, escapeXML(st.Fill))
	}
	if st.Stroke != "" {
		fmt.Fprintf(&sb, ` stroke="%s" stroke-width="%s"`, escapeXML(st.Stroke), num(st.StrokeWidth))
	}
	if st.LineCap != "" {
		fmt.Fprintf(&sb, ` stroke-linecap="%s"`, escapeXML(st.LineCap))
	}
	return sb.String()
}

// sketched writes a primitive as a group of a rough fill path (when filled)
// and a rough stroke path.
func (s *svgWriter) sketched(buf *bytes.Buffer, indent string, n *drawing.Node) {
	st := n.Style
	var fill, stroke string
	switch n.Kind {
	case drawing.KindRect:
		pts := rectPoints(n.X, n.Y, n.W, n.H, n.Rx)
		if st.FillStyle == drawing.FillSolid {
			fill = s.gen.solidFill(pts, st)
		}
		stroke = s.gen.outline(pts, true, st)
	case drawing.KindPolygon:
		if st.FillStyle == drawing.FillSolid {
			fill = s.gen.solidFill(n.Points, st)
		}
		stroke = s.gen.outline(n.Points, true, st)
	case drawing.KindLine:
		stroke = s.gen.outline([]drawing.Point{{X: n.X, Y: n.Y}, {X: n.X2, Y: n.Y2}}, false, st)
	case drawing.KindPath:
		stroke = s.gen.outline(n.Points, false, st)
	case drawing.KindCircle:
		if st.FillStyle == drawing.FillSolid {
			fill = s.gen.solidFill(rectPoints(n.X-n.R, n.Y-n.R, 2*n.R, 2*n.R, n.R), st)
		}
		stroke = s.gen.ellipse(n.X, n.Y, n.R, st)
	}

	fmt.Fprintf(buf, "%s<g>\n", indent)
	if fill != "" {
		fmt.Fprintf(buf, `%s  <path d="%s" stroke="none" fill="%s"/>`+"\n", indent, fill, escapeXML(st.Fill))
	}
	if stroke != "" && st.Stroke != "" {
		capAttr := ""
		if st.LineCap != "" {
			capAttr = fmt.Sprintf(` stroke-linecap="%s"`, escapeXML(st.LineCap))
		}
		fmt.Fprintf(buf, `%s  <path d="%s" stroke="%s" stroke-width="%s" fill="none"%s/>`+"\n",
			indent, stroke, escapeXML(st.Stroke), num(st.StrokeWidth), capAttr)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

func (s *svgWriter) text(buf *bytes.Buffer, indent string, n *drawing.Node) {
	t := n.Text
	transform := ""
	if t.Rotate != nil {
		transform = fmt.Sprintf(` transform="rotate(%s, %s, %s)"`, num(*t.Rotate), num(n.X), num(n.Y))
	}
	fmt.Fprintf(buf, `%s<text x="%s" y="%s" text-anchor="%s" font-family="%s" font-size="%s" fill="%s" font-weight="%s" opacity="%s"%s>%s</text>`+"\n",
		indent, num(n.X), num(n.Y), escapeXML(string(t.Align)), escapeXML(s.family), num(t.Size),
		escapeXML(t.Fill), escapeXML(string(t.Weight)), num(t.Opacity), transform, escapeXML(t.Content))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func points(pts []drawing.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func escapeXML(s string) string {
	var buf strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
