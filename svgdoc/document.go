// Implements the vector document model: an append only
// collection of validated primitives (lines, circles, polygons
// and paths), ready to be consumed by a renderer.
//
// Each primitive is checked when added; invalid ones are
// silently dropped, so that a best effort export never fails
// because of one bad element.
package svgdoc

import (
	"strings"
	"unicode"

	"github.com/synesenom/dl/svgpath"
)

// DefaultAuthor is the author of a new document.
const DefaultAuthor = "dl"

// BoundingBox is the size of the drawing, with its origin at (0, 0).
type BoundingBox struct {
	W, H float64
}

type (
	// Line is a stroked segment; it is never filled.
	Line struct {
		Src, Dst    svgpath.Point
		Stroke      Color
		StrokeWidth float64
	}

	// Circle is a disk, with an optional fill and stroke.
	// StrokeWidth is 0 when Stroke is nil.
	Circle struct {
		Center       svgpath.Point
		Radius       float64
		Fill, Stroke *Color
		StrokeWidth  float64
	}

	// Polygon is an implicitly closed sequence of corners.
	Polygon struct {
		Corners      []svgpath.Point
		Fill, Stroke *Color
		StrokeWidth  float64
	}

	// Path is a list of subpaths, closed or not.
	Path struct {
		Segments     svgpath.Subpaths
		Fill, Stroke *Color
		StrokeWidth  float64
		Closed       bool
	}
)

// Document stores the primitives in insertion order,
// which is also the paint order.
type Document struct {
	author string
	box    BoundingBox

	lines    []Line
	circles  []Circle
	polygons []Polygon
	paths    []Path
}

// New returns an empty document of size `w` x `h`.
func New(w, h float64) *Document {
	return &Document{author: DefaultAuthor, box: BoundingBox{W: w, H: h}}
}

// SetAuthor sets the author of the document. Control characters,
// line breaks included, are replaced by spaces. An author left
// blank is ignored.
func (doc *Document) SetAuthor(author string) *Document {
	author = strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, author))
	if author != "" {
		doc.author = author
	}
	return doc
}

// Author returns the author of the document.
func (doc *Document) Author() string { return doc.author }

// BoundingBox returns the size of the document.
func (doc *Document) BoundingBox() BoundingBox { return doc.box }

func finite(v float64) bool { return v-v == 0 }

func validColor(c *Color) bool { return c != nil && c.Valid() }

// resolvePaint applies the visibility rule shared by circles,
// polygons and paths: a valid fill, or a valid stroke with a positive
// width. Invalid paints are returned as nil.
func resolvePaint(fill, stroke *Color, width float64) (f, s *Color, w float64, ok bool) {
	if validColor(fill) {
		cp := *fill
		f = &cp
	}
	if validColor(stroke) && width > 0 && finite(width) {
		cp := *stroke
		s, w = &cp, width
	}
	return f, s, w, f != nil || s != nil
}

// AddLine adds a line from `src` to `dst`, and returns true if
// it has been accepted, that is if both ends are valid and distinct,
// `stroke` is valid and `width` is positive.
func (doc *Document) AddLine(src, dst svgpath.Point, stroke *Color, width float64) bool {
	if !src.Valid() || !dst.Valid() || src == dst {
		return false
	}
	if !validColor(stroke) || !(width > 0) || !finite(width) {
		return false
	}
	doc.lines = append(doc.lines, Line{Src: src, Dst: dst, Stroke: *stroke, StrokeWidth: width})
	return true
}

// AddCircle adds a circle and returns true if it has been accepted:
// `center` must be valid, `radius` positive, and the circle must have
// a valid fill or a valid stroke with positive width.
// An invalid fill or stroke is dropped when the other one is valid.
func (doc *Document) AddCircle(center svgpath.Point, radius float64, fill, stroke *Color, width float64) bool {
	if !center.Valid() || !(radius > 0) || !finite(radius) {
		return false
	}
	f, s, w, ok := resolvePaint(fill, stroke, width)
	if !ok {
		return false
	}
	doc.circles = append(doc.circles, Circle{Center: center, Radius: radius, Fill: f, Stroke: s, StrokeWidth: w})
	return true
}

// AddPolygon adds a polygon and returns true if it has been accepted:
// it needs at least 3 corners, all valid, and the same paint as a circle.
func (doc *Document) AddPolygon(corners []svgpath.Point, fill, stroke *Color, width float64) bool {
	if len(corners) < 3 {
		return false
	}
	for _, p := range corners {
		if !p.Valid() {
			return false
		}
	}
	f, s, w, ok := resolvePaint(fill, stroke, width)
	if !ok {
		return false
	}
	doc.polygons = append(doc.polygons, Polygon{
		Corners: append([]svgpath.Point(nil), corners...),
		Fill:    f, Stroke: s, StrokeWidth: w,
	})
	return true
}

// AddPath adds a path and returns true if it has been accepted:
// it needs at least 2 points in total, all valid, and the same paint as a circle.
// `closed` is stored as given.
func (doc *Document) AddPath(segments svgpath.Subpaths, fill, stroke *Color, width float64, closed bool) bool {
	if segments.Len() < 2 {
		return false
	}
	for _, sub := range segments {
		for _, p := range sub {
			if !p.Valid() {
				return false
			}
		}
	}
	f, s, w, ok := resolvePaint(fill, stroke, width)
	if !ok {
		return false
	}
	segs := make(svgpath.Subpaths, 0, len(segments))
	for _, sub := range segments {
		if len(sub) == 0 {
			continue
		}
		segs = append(segs, append(svgpath.Subpath(nil), sub...))
	}
	doc.paths = append(doc.paths, Path{Segments: segs, Fill: f, Stroke: s, StrokeWidth: w, Closed: closed})
	return true
}

// Line is the chainable version of AddLine.
func (doc *Document) Line(src, dst svgpath.Point, stroke *Color, width float64) *Document {
	doc.AddLine(src, dst, stroke, width)
	return doc
}

// Circle is the chainable version of AddCircle.
func (doc *Document) Circle(center svgpath.Point, radius float64, fill, stroke *Color, width float64) *Document {
	doc.AddCircle(center, radius, fill, stroke, width)
	return doc
}

// Polygon is the chainable version of AddPolygon.
func (doc *Document) Polygon(corners []svgpath.Point, fill, stroke *Color, width float64) *Document {
	doc.AddPolygon(corners, fill, stroke, width)
	return doc
}

// Path is the chainable version of AddPath.
func (doc *Document) Path(segments svgpath.Subpaths, fill, stroke *Color, width float64, closed bool) *Document {
	doc.AddPath(segments, fill, stroke, width, closed)
	return doc
}

// Lines returns the accepted lines, in insertion order.
func (doc *Document) Lines() []Line { return append([]Line(nil), doc.lines...) }

// Circles returns the accepted circles, in insertion order.
func (doc *Document) Circles() []Circle { return append([]Circle(nil), doc.circles...) }

// Polygons returns the accepted polygons, in insertion order.
func (doc *Document) Polygons() []Polygon { return append([]Polygon(nil), doc.polygons...) }

// Paths returns the accepted paths, in insertion order.
func (doc *Document) Paths() []Path { return append([]Path(nil), doc.paths...) }

// Len returns the number of accepted primitives.
func (doc *Document) Len() int {
	return len(doc.lines) + len(doc.circles) + len(doc.polygons) + len(doc.paths)
}
