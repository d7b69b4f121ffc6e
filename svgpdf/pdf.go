// Implements a PDF backend to render documents,
// by wrapping github.com/benoitkugler/pdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgpath"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// canvas is the subset of contentstream.Appearance
// used by the renderer
type canvas interface {
	Ops(ops ...contentstream.Operation)
	SetColorFill(c color.Color)
	SetColorStroke(c color.Color)
}

// Renderer writes the primitives into a content stream.
// The PDF user space is y-up, like the document,
// so that points are written as given.
// Translucent colors are blended with white.
type Renderer struct {
	pdf canvas
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *contentstream.Appearance) *Renderer {
	return &Renderer{pdf: pdf}
}

// Make writes a one page PDF file drawing `doc` to `w`.
// The page has the size of the document bounding box.
func Make(doc *svgdoc.Document, w io.Writer) error {
	out := build(doc)
	return out.Write(w, nil)
}

// SaveToFile writes a one page PDF file drawing `doc` to the named file.
func SaveToFile(doc *svgdoc.Document, name string) error {
	out := build(doc)
	return out.WriteFile(name, nil)
}

func build(doc *svgdoc.Document) model.Document {
	box := doc.BoundingBox()
	pdf := contentstream.NewAppearance(box.W, box.H)
	svgdraw.Draw(doc, NewRenderer(&pdf))

	var out model.Document
	out.Trailer.Info.Author = doc.Author()
	out.Catalog.Pages.Kids = append(out.Catalog.Pages.Kids, pdf.ToPageObject(true))
	return out
}

func (r *Renderer) Begin(string, svgdoc.BoundingBox) {}

func (r *Renderer) Section(svgdraw.Section) {}

func (r *Renderer) End() {}

func (r *Renderer) DrawLine(l svgdoc.Line) {
	r.pdf.Ops(contentstream.OpSave{})
	r.pdf.SetColorStroke(l.Stroke.Blend(1))
	r.pdf.Ops(
		contentstream.OpSetLineWidth{W: l.StrokeWidth},
		contentstream.OpMoveTo{X: l.Src.X, Y: l.Src.Y},
		contentstream.OpLineTo{X: l.Dst.X, Y: l.Dst.Y},
		contentstream.OpStroke{},
		contentstream.OpRestore{},
	)
}

func (r *Renderer) DrawCircle(c svgdoc.Circle) {
	r.paint(circleOps(c.Center, c.Radius), c.Fill, c.Stroke, c.StrokeWidth)
}

func (r *Renderer) DrawPolygon(p svgdoc.Polygon) {
	r.paint(pathOps(svgpath.Subpaths{p.Corners}, true), p.Fill, p.Stroke, p.StrokeWidth)
}

func (r *Renderer) DrawPath(p svgdoc.Path) {
	r.paint(pathOps(p.Segments, p.Closed), p.Fill, p.Stroke, p.StrokeWidth)
}

// paint fills, then strokes the path described by `ops`.
// The path is written once per painting operation.
func (r *Renderer) paint(ops []contentstream.Operation, fill, stroke *svgdoc.Color, width float64) {
	if fill == nil && stroke == nil {
		panic("svgpdf: primitive without paint")
	}
	r.pdf.Ops(contentstream.OpSave{})
	if fill != nil {
		r.pdf.SetColorFill(fill.Blend(1))
		r.pdf.Ops(ops...)
		r.pdf.Ops(contentstream.OpFill{})
	}
	if stroke != nil {
		r.pdf.SetColorStroke(stroke.Blend(1))
		r.pdf.Ops(contentstream.OpSetLineWidth{W: width})
		r.pdf.Ops(ops...)
		r.pdf.Ops(contentstream.OpStroke{})
	}
	r.pdf.Ops(contentstream.OpRestore{})
}

func pathOps(segments svgpath.Subpaths, closed bool) []contentstream.Operation {
	var ops []contentstream.Operation
	for _, sub := range segments {
		for i, p := range sub {
			if i == 0 {
				ops = append(ops, contentstream.OpMoveTo{X: p.X, Y: p.Y})
			} else {
				ops = append(ops, contentstream.OpLineTo{X: p.X, Y: p.Y})
			}
		}
		if closed {
			ops = append(ops, contentstream.OpClosePath{})
		}
	}
	return ops
}

// kappa is the distance of the control points for
// a cubic approximation of a quarter of the unit circle.
const kappa = 0.5522847498307936

// circleOps approximates the circle by four cubic bezier curves,
// counter clockwise from the point (cx + r, cy).
func circleOps(center svgpath.Point, r float64) []contentstream.Operation {
	cx, cy, k := center.X, center.Y, kappa*r
	return []contentstream.Operation{
		contentstream.OpMoveTo{X: cx + r, Y: cy},
		contentstream.OpCubicTo{X1: cx + r, Y1: cy + k, X2: cx + k, Y2: cy + r, X3: cx, Y3: cy + r},
		contentstream.OpCubicTo{X1: cx - k, Y1: cy + r, X2: cx - r, Y2: cy + k, X3: cx - r, Y3: cy},
		contentstream.OpCubicTo{X1: cx - r, Y1: cy - k, X2: cx - k, Y2: cy - r, X3: cx, Y3: cy - r},
		contentstream.OpCubicTo{X1: cx + k, Y1: cy - r, X2: cx + r, Y2: cy - k, X3: cx + r, Y3: cy},
		contentstream.OpClosePath{},
	}
}
