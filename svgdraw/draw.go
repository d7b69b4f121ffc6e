// Given a populated document, implements how to
// draw it on a page.
// This requires a driver implementing the actual draw operations,
// such as an EPS writer, a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"fmt"
	"strings"

	"github.com/synesenom/dl/svgdoc"
)

// Section groups the primitives of a document,
// which are always drawn in the order Lines, Circles, Paths.
type Section uint8

const (
	Lines Section = iota
	Circles
	Paths // polygons, then paths
)

func (s Section) String() string {
	switch s {
	case Lines:
		return "Lines"
	case Circles:
		return "Circles"
	case Paths:
		return "Paths"
	default:
		return "<unknown Section>"
	}
}

// Driver knows how to do the actual draw operations
// but doesn't need any svg knowledge.
// Points are already transformed and expressed in a y-up
// space, with the origin at the bottom left of the bounding box.
// The primitives are valid: a driver may assume that each one
// has a visible paint, and panic otherwise.
type Driver interface {
	// Begin is called once, before any other method.
	Begin(author string, box svgdoc.BoundingBox)

	// Section is called when entering a new group of primitives,
	// even if it is empty.
	Section(s Section)

	DrawLine(l svgdoc.Line)
	DrawCircle(c svgdoc.Circle)
	DrawPolygon(p svgdoc.Polygon)
	DrawPath(p svgdoc.Path)

	// End is called once, after every primitive.
	End()
}

// Draw walks the document in paint order and sends the primitives to `d`.
// The document is not modified.
func Draw(doc *svgdoc.Document, d Driver) {
	d.Begin(doc.Author(), doc.BoundingBox())

	d.Section(Lines)
	for _, l := range doc.Lines() {
		d.DrawLine(l)
	}

	d.Section(Circles)
	for _, c := range doc.Circles() {
		d.DrawCircle(c)
	}

	d.Section(Paths)
	for _, p := range doc.Polygons() {
		d.DrawPolygon(p)
	}
	for _, p := range doc.Paths() {
		d.DrawPath(p)
	}

	d.End()
}

// Format is an output format.
type Format uint8

const (
	EPS Format = iota
	PDF
	PNG
)

func (f Format) String() string {
	switch f {
	case EPS:
		return "eps"
	case PDF:
		return "pdf"
	case PNG:
		return "png"
	default:
		return "<unknown Format>"
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case PDF:
		return "application/pdf"
	case PNG:
		return "image/png"
	default:
		return "application/postscript"
	}
}

// ParseFormat returns the format named `s` (case insensitive),
// such as "eps".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "eps", "ps":
		return EPS, nil
	case "pdf":
		return PDF, nil
	case "png":
		return PNG, nil
	}
	return 0, fmt.Errorf("unsupported output format %q", s)
}
