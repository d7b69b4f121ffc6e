package svgdom

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/synesenom/dl/svgattr"
	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgpath"
)

// ErrorMode sets how the conversion reacts to elements
// it can't process.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips the faulty elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips the faulty elements, and logs a warning
	// (see SetLogger).
	WarnErrorMode
	// StrictErrorMode aborts the conversion on the first faulty element.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

var (
	// ErrNotSVG is returned when the root element is not <svg>.
	ErrNotSVG = errors.New("root element is not <svg>")
	// ErrNoSize is returned when neither width and height
	// nor the viewBox give a positive size.
	ErrNoSize = errors.New("document size is not positive")
	// ErrUnsupportedElement is reported for elements with no conversion.
	ErrUnsupportedElement = errors.New("unsupported element")
)

// Options configures Convert. The zero value is ready to use.
type Options struct {
	// Author is written in the document, defaulting to svgdoc.DefaultAuthor.
	Author string
	// Transform parses the transform attributes.
	Transform svgpath.TransformParser
	ErrorMode ErrorMode
}

// converter is used while walking the tree
type converter struct {
	doc    *svgdoc.Document
	tp     svgpath.TransformParser
	mode   ErrorMode
	height float64
}

// state is the context inherited from the enclosing groups
type state struct {
	transform svgpath.Matrix2D
	opacity   float64
}

// Convert builds the vector document drawn by the SVG tree under `root`.
// The document size is taken from the width and height attributes,
// or from the viewBox. Points are mapped to the y-up space of the
// document: once transformed, (x, y) becomes (x, h - y).
func Convert(root svgattr.Element, opts Options) (*svgdoc.Document, error) {
	if root.Name() != "svg" {
		return nil, fmt.Errorf("<%s>: %w", root.Name(), ErrNotSVG)
	}
	w, h, view, err := documentSize(root)
	if err != nil {
		return nil, err
	}
	c := converter{
		doc:    svgdoc.New(w, h),
		tp:     opts.Transform,
		mode:   opts.ErrorMode,
		height: h,
	}
	if opts.Author != "" {
		c.doc.SetAuthor(opts.Author)
	}
	if err = c.walk(root, state{transform: view, opacity: 1}); err != nil {
		return nil, err
	}
	return c.doc, nil
}

// documentSize returns the size of the root, and the matrix
// mapping the viewBox to it.
func documentSize(root svgattr.Element) (w, h float64, view svgpath.Matrix2D, err error) {
	view = svgpath.Identity
	if w, err = svgattr.GetNumber(root, "width", 0); err != nil {
		return
	}
	if h, err = svgattr.GetNumber(root, "height", 0); err != nil {
		return
	}
	if vb, ok := root.Attribute("viewBox"); ok {
		var pts []svgpath.Point
		pts, err = svgpath.ParsePoints(vb)
		if err != nil {
			return
		}
		if len(pts) != 2 {
			err = fmt.Errorf("viewBox %q: %w", vb, svgpath.ErrMissingNumber)
			return
		}
		origin, size := pts[0], pts[1]
		if w == 0 {
			w = size.X
		}
		if h == 0 {
			h = size.Y
		}
		if size.X > 0 && size.Y > 0 {
			view = svgpath.Identity.Scale(w/size.X, h/size.Y).Translate(-origin.X, -origin.Y)
		}
	}
	if !(w > 0 && h > 0) {
		err = fmt.Errorf("%gx%g: %w", w, h, ErrNoSize)
	}
	return
}

// fail applies the error mode to `err`, raised by `e`.
func (c *converter) fail(e svgattr.Element, err error) error {
	switch c.mode {
	case StrictErrorMode:
		return fmt.Errorf("<%s>: %w", e.Name(), err)
	case WarnErrorMode:
		Logger().Warn("skipping svg element", slog.String("element", e.Name()), slog.Any("err", err))
	}
	return nil
}

// rejected logs a primitive refused by the document.
func rejected(e svgattr.Element) {
	Logger().Debug("primitive rejected", slog.String("element", e.Name()))
}

func (c *converter) walk(e svgattr.Element, st state) error {
	if v, ok := e.Attribute("transform"); ok {
		m, err := c.tp.Parse(v)
		if err != nil {
			return c.fail(e, err)
		}
		st.transform = st.transform.Mult(m)
	}
	op, err := svgattr.GetNumber(e, "opacity", 1)
	if err != nil {
		return c.fail(e, err)
	}
	st.opacity *= op

	name := e.Name()
	switch {
	case name == "svg" || name == "g":
		for _, child := range e.Children() {
			if err := c.walk(child, st); err != nil {
				return err
			}
		}
		return nil
	case skippedElements[name]:
		return nil
	}
	fn, ok := elementFuncs[name]
	if !ok {
		return c.fail(e, ErrUnsupportedElement)
	}
	if err := fn(c, e, st); err != nil {
		return c.fail(e, err)
	}
	return nil
}

// skippedElements hold no drawing
var skippedElements = map[string]bool{
	"title":    true,
	"desc":     true,
	"metadata": true,
	"defs":     true,
	"style":    true,
}

type elementFunc func(c *converter, e svgattr.Element, st state) error

var elementFuncs = map[string]elementFunc{
	"line":     lineF,
	"circle":   circleF,
	"rect":     rectF,
	"polygon":  polygonF,
	"polyline": polylineF,
	"path":     pathF,
}

// toDocument maps a user space point to the document.
func (c *converter) toDocument(m svgpath.Matrix2D, p svgpath.Point) svgpath.Point {
	p = m.Apply(p)
	return svgpath.Point{X: p.X, Y: c.height - p.Y}
}

func (c *converter) toDocumentAll(m svgpath.Matrix2D, pts []svgpath.Point) []svgpath.Point {
	out := make([]svgpath.Point, len(pts))
	for i, p := range pts {
		out[i] = c.toDocument(m, p)
	}
	return out
}

// paint resolves a fill or stroke color, blended with its opacity.
func paint(e svgattr.Element, property string, opacity float64) (*svgdoc.Color, error) {
	col, err := svgattr.ParseColor(svgattr.GetString(e, property, ""))
	if col == nil || err != nil {
		return nil, err
	}
	op, err := svgattr.GetNumber(e, property+"-opacity", 1)
	if err != nil {
		return nil, err
	}
	blended := col.Blend(op * opacity)
	return &blended, nil
}

// paint is the package paint, except that outside of StrictErrorMode
// an invalid paint is only absent, so that the other one may still be used.
func (c *converter) paint(e svgattr.Element, property string, opacity float64) (*svgdoc.Color, error) {
	col, err := paint(e, property, opacity)
	if err == nil || c.mode == StrictErrorMode {
		return col, err
	}
	if c.mode == WarnErrorMode {
		Logger().Warn("ignoring svg paint", slog.String("element", e.Name()),
			slog.String("property", property), slog.Any("err", err))
	}
	return nil, nil
}

// style is the resolved paint of an element
type style struct {
	fill, stroke *svgdoc.Color
	width        float64
}

func (c *converter) readStyle(e svgattr.Element, st state) (s style, err error) {
	if s.fill, err = c.paint(e, "fill", st.opacity); err != nil {
		return
	}
	if s.stroke, err = c.paint(e, "stroke", st.opacity); err != nil {
		return
	}
	if s.width, err = svgattr.GetNumber(e, "stroke-width", 1); err != nil {
		return
	}
	s.width *= st.transform.ScaleFactor()
	return
}

// readNumbers returns the attributes `names`, defaulting to 0.
func readNumbers(e svgattr.Element, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := svgattr.GetNumber(e, name, 0)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func lineF(c *converter, e svgattr.Element, st state) error {
	coords, err := readNumbers(e, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	src := c.toDocument(st.transform, svgpath.Point{X: coords[0], Y: coords[1]})
	dst := c.toDocument(st.transform, svgpath.Point{X: coords[2], Y: coords[3]})
	if !c.doc.AddLine(src, dst, s.stroke, s.width) {
		rejected(e)
	}
	return nil
}

func circleF(c *converter, e svgattr.Element, st state) error {
	values, err := readNumbers(e, "cx", "cy", "r")
	if err != nil {
		return err
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	center := c.toDocument(st.transform, svgpath.Point{X: values[0], Y: values[1]})
	radius := values[2] * st.transform.ScaleFactor()
	if !c.doc.AddCircle(center, radius, s.fill, s.stroke, s.width) {
		rejected(e)
	}
	return nil
}

// rectF ignores the rounded corners.
func rectF(c *converter, e svgattr.Element, st state) error {
	values, err := readNumbers(e, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	x, y, w, h := values[0], values[1], values[2], values[3]
	if w <= 0 || h <= 0 { // not drawn, but not an error
		rejected(e)
		return nil
	}
	corners := c.toDocumentAll(st.transform, []svgpath.Point{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
	})
	if !c.doc.AddPolygon(corners, s.fill, s.stroke, s.width) {
		rejected(e)
	}
	return nil
}

func readPoints(e svgattr.Element) ([]svgpath.Point, error) {
	v, _ := e.Attribute("points")
	return svgpath.ParsePoints(v)
}

func polygonF(c *converter, e svgattr.Element, st state) error {
	pts, err := readPoints(e)
	if err != nil {
		return err
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	if !c.doc.AddPolygon(c.toDocumentAll(st.transform, pts), s.fill, s.stroke, s.width) {
		rejected(e)
	}
	return nil
}

// polylineF adds an open path.
func polylineF(c *converter, e svgattr.Element, st state) error {
	pts, err := readPoints(e)
	if err != nil {
		return err
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	segments := svgpath.Subpaths{c.toDocumentAll(st.transform, pts)}
	if !c.doc.AddPath(segments, s.fill, s.stroke, s.width, false) {
		rejected(e)
	}
	return nil
}

// pathF closes the path when `d` ends with a closepath command.
func pathF(c *converter, e svgattr.Element, st state) error {
	d, _ := e.Attribute("d")
	d = strings.TrimSpace(d)
	closed := strings.HasSuffix(d, "Z") || strings.HasSuffix(d, "z")
	if closed {
		d = d[:len(d)-1]
	}
	segments, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	for i, sub := range segments {
		segments[i] = c.toDocumentAll(st.transform, sub)
	}
	s, err := c.readStyle(e, st)
	if err != nil {
		return err
	}
	if !c.doc.AddPath(segments, s.fill, s.stroke, s.width, closed) {
		rejected(e)
	}
	return nil
}
