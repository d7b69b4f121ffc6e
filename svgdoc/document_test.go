package svgdoc

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/synesenom/dl/svgpath"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var (
	red    = &Color{R: 1}
	blue   = &Color{B: 1}
	bad    = &Color{R: 2}
	nan    = math.NaN()
	origin = svgpath.Point{}
)

func TestAuthor(t *testing.T) {
	doc := New(10, 10)
	if doc.Author() != DefaultAuthor {
		t.Errorf("unexpected default author %s", doc.Author())
	}
	doc.SetAuthor("me")
	doc.SetAuthor("")
	if doc.Author() != "me" {
		t.Errorf("expected me, got %s", doc.Author())
	}
	diff(t, BoundingBox{W: 10, H: 10}, doc.BoundingBox())

	for input, want := range map[string]string{
		"x\nerasepage showpage": "x erasepage showpage",
		"a\r\tb":                "a  b",
		"\n\r":                  "me",
		" spaced ":              "spaced",
	} {
		doc := New(1, 1).SetAuthor("me").SetAuthor(input)
		if doc.Author() != want {
			t.Errorf("%q: expected %q, got %q", input, want, doc.Author())
		}
	}
}

func TestAddLine(t *testing.T) {
	for _, test := range []struct {
		src, dst svgpath.Point
		stroke   *Color
		width    float64
		want     bool
	}{
		{origin, svgpath.Point{X: 1, Y: 2}, red, 1, true},
		{origin, origin, red, 1, false},
		{origin, svgpath.Point{X: nan, Y: 2}, red, 1, false},
		{svgpath.Point{X: math.Inf(1)}, origin, red, 1, false},
		{origin, svgpath.Point{X: 1}, nil, 1, false},
		{origin, svgpath.Point{X: 1}, bad, 1, false},
		{origin, svgpath.Point{X: 1}, red, 0, false},
		{origin, svgpath.Point{X: 1}, red, -1, false},
		{origin, svgpath.Point{X: 1}, red, nan, false},
	} {
		doc := New(10, 10)
		if got := doc.AddLine(test.src, test.dst, test.stroke, test.width); got != test.want {
			t.Errorf("%v: expected %v, got %v", test, test.want, got)
		}
		if n := len(doc.Lines()); (n == 1) != test.want {
			t.Errorf("%v: unexpected store size %d", test, n)
		}
	}
}

func TestAddCircle(t *testing.T) {
	c := svgpath.Point{X: 1, Y: 2}
	for _, test := range []struct {
		center       svgpath.Point
		radius       float64
		fill, stroke *Color
		width        float64
		want         bool
	}{
		{c, 10, red, blue, 1, true},
		{svgpath.Point{X: nan, Y: 2}, 10, red, blue, 1, false},
		{c, 0, red, blue, 1, false},
		{c, -3, red, blue, 1, false},
		{c, nan, red, blue, 1, false},
		// one valid paint is enough
		{c, 10, nil, blue, 1, true},
		{c, 10, bad, blue, 1, true},
		{c, 10, red, nil, 1, true},
		{c, 10, red, bad, 1, true},
		{c, 10, red, blue, 0, true},
		// no paint
		{c, 10, nil, nil, 1, false},
		{c, 10, bad, blue, 0, false},
		{c, 10, nil, blue, -1, false},
	} {
		doc := New(10, 10)
		if got := doc.AddCircle(test.center, test.radius, test.fill, test.stroke, test.width); got != test.want {
			t.Errorf("%v: expected %v, got %v", test, test.want, got)
		}
		if doc.Len() != 0 != test.want {
			t.Errorf("%v: unexpected store size %d", test, doc.Len())
		}
	}
}

func TestCircleInvalidPaintIsDropped(t *testing.T) {
	doc := New(10, 10)
	doc.AddCircle(origin, 1, bad, blue, 2)
	doc.AddCircle(origin, 1, red, blue, 0)
	doc.AddCircle(origin, 1, red, bad, 2)
	diff(t, []Circle{
		{Radius: 1, Fill: nil, Stroke: blue, StrokeWidth: 2},
		{Radius: 1, Fill: red, Stroke: nil, StrokeWidth: 0},
		{Radius: 1, Fill: red, Stroke: nil, StrokeWidth: 0},
	}, doc.Circles())
}

func TestAddPolygon(t *testing.T) {
	square := []svgpath.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	doc := New(10, 10)
	if doc.AddPolygon(square[:2], red, blue, 1) {
		t.Error("polygon with 2 corners must be rejected")
	}
	if !doc.AddPolygon(square, red, nil, 0) {
		t.Error("polygon with 3 corners and a fill must be accepted")
	}
	if doc.AddPolygon([]svgpath.Point{{X: 0, Y: 0}, {X: 1, Y: nan}, {X: 1, Y: 1}}, red, nil, 0) {
		t.Error("polygon with an invalid corner must be rejected")
	}
	if doc.AddPolygon(square, nil, blue, 0) {
		t.Error("polygon without visible paint must be rejected")
	}
	if len(doc.Polygons()) != 1 {
		t.Errorf("expected 1 polygon, got %d", len(doc.Polygons()))
	}

	// the stored corners do not alias the input
	square[0].X = 5
	if doc.Polygons()[0].Corners[0].X != 0 {
		t.Error("polygon corners must be copied")
	}
}

func TestAddPath(t *testing.T) {
	for _, test := range []struct {
		segments     svgpath.Subpaths
		fill, stroke *Color
		width        float64
		want         bool
	}{
		{svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, red, nil, 0, true},
		{svgpath.Subpaths{{{X: 0, Y: 0}}, {{X: 1, Y: 1}}}, nil, blue, 1, true},
		{svgpath.Subpaths{{{X: 0, Y: 0}}}, red, blue, 1, false},
		{nil, red, blue, 1, false},
		{svgpath.Subpaths{{{X: 0, Y: 0}, {X: nan, Y: 1}}}, red, blue, 1, false},
		{svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, nil, nil, 1, false},
		{svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, bad, blue, 0, false},
	} {
		doc := New(10, 10)
		if got := doc.AddPath(test.segments, test.fill, test.stroke, test.width, true); got != test.want {
			t.Errorf("%v: expected %v, got %v", test.segments, test.want, got)
		}
		if len(doc.Paths()) != 0 != test.want {
			t.Errorf("%v: unexpected store size %d", test.segments, len(doc.Paths()))
		}
	}
}

func TestPathClosedIsVerbatim(t *testing.T) {
	seg := svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	doc := New(10, 10).
		Path(seg, red, nil, 0, true).
		Path(seg, red, nil, 0, false)
	paths := doc.Paths()
	if !paths[0].Closed || paths[1].Closed {
		t.Errorf("unexpected closed flags: %v %v", paths[0].Closed, paths[1].Closed)
	}
}

func TestInsertionOrder(t *testing.T) {
	doc := New(100, 100).
		Line(origin, svgpath.Point{X: 1}, red, 1).
		Line(origin, origin, red, 1). // rejected
		Line(origin, svgpath.Point{X: 2}, blue, 2).
		Circle(origin, 3, red, nil, 0).
		Polygon([]svgpath.Point{{}, {X: 1}, {Y: 1}}, nil, red, 1)

	diff(t, []Line{
		{Dst: svgpath.Point{X: 1}, Stroke: *red, StrokeWidth: 1},
		{Dst: svgpath.Point{X: 2}, Stroke: *blue, StrokeWidth: 2},
	}, doc.Lines())
	if doc.Len() != 4 {
		t.Errorf("expected 4 primitives, got %d", doc.Len())
	}
}

func TestColor(t *testing.T) {
	c := RGB255(255, 255, 0)
	diff(t, Color{R: 1, G: 1, B: 0}, c)
	if !c.Valid() {
		t.Error("expected valid color")
	}
	for _, c := range []Color{{R: -0.1}, {G: 1.1}, {B: nan}, {A: 2, HasAlpha: true}} {
		if c.Valid() {
			t.Errorf("%v: expected invalid color", c)
		}
	}

	diff(t, Color{R: 1, G: 0.5, B: 0.5}, Color{R: 1}.Blend(0.5))
	diff(t, Color{R: 1, G: 1, B: 1}, Color{}.Blend(0))
	diff(t, Color{R: 1, G: 0.5, B: 0.5}, Color{R: 1, A: 0.5, HasAlpha: true}.Blend(1))

	r, g, b, a := Color{R: 1, A: 0.5, HasAlpha: true}.RGBA()
	if r != 0x8000 || g != 0 || b != 0 || a != 0x8000 {
		t.Errorf("unexpected RGBA %x %x %x %x", r, g, b, a)
	}
}
