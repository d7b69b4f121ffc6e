package svgeps

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgpath"
)

var (
	white  = &svgdoc.Color{R: 1, G: 1, B: 1}
	yellow = svgdoc.RGB255(255, 255, 0)
)

func TestReduce(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"", ""},
		{"a b c d", "a b c d"},
		{"a   b   c  d", "a b c d"},
		{"a \n b \n   c  d", "a \nb \nc d"},
		{"  x \n", "x"},
	} {
		if got := reduce(test.in); got != test.want {
			t.Errorf("%q: expected %q, got %q", test.in, test.want, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want string
	}{
		{1, "1"},
		{0.5, "0.5"},
		{-2.25, "-2.25"},
		{math.Copysign(0, -1), "0"},
		{1e21, "1000000000000000000000"},
		{1.0 / 3, "0.3333333333333333"},
	} {
		if got := formatNumber(test.v); got != test.want {
			t.Errorf("%g: expected %s, got %s", test.v, test.want, got)
		}
	}
}

func TestDrawLine(t *testing.T) {
	got := drawLine(svgdoc.Line{
		Src: svgpath.Point{X: 1, Y: 2}, Dst: svgpath.Point{X: 3, Y: 4},
		Stroke: yellow, StrokeWidth: 1,
	})
	want := "gsave newpath 1 1 0 setrgbcolor 1 setlinewidth 1 2 moveto 3 4 lineto stroke grestore\n"
	if got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestDrawCircle(t *testing.T) {
	center := svgpath.Point{X: 1, Y: 2}
	for _, test := range []struct {
		c    svgdoc.Circle
		want string
	}{
		{
			svgdoc.Circle{Center: center, Radius: 3, Fill: white},
			"gsave newpath 1 1 1 setrgbcolor 1 2 3 0 360 arc closepath fill grestore\n",
		},
		{
			svgdoc.Circle{Center: center, Radius: 3, Stroke: white, StrokeWidth: 2},
			"gsave newpath 1 1 1 setrgbcolor 2 setlinewidth 1 2 3 0 360 arc closepath stroke grestore\n",
		},
		{
			svgdoc.Circle{Center: center, Radius: 3, Fill: white, Stroke: white, StrokeWidth: 2},
			"gsave newpath 1 1 1 setrgbcolor 1 2 3 0 360 arc closepath gsave fill grestore 1 1 1 setrgbcolor 2 setlinewidth stroke grestore\n",
		},
	} {
		if got := drawCircle(test.c); got != test.want {
			t.Errorf("expected\n%q\ngot\n%q", test.want, got)
		}
	}
}

func TestDrawCircleWithoutPaintPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	drawCircle(svgdoc.Circle{Radius: 3})
}

func TestDrawPath(t *testing.T) {
	corners := svgpath.Subpaths{{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}}}
	for _, test := range []struct {
		p    svgdoc.Path
		want string
	}{
		{
			svgdoc.Path{Segments: corners, Fill: white, Closed: true},
			"gsave newpath 1 1 1 setrgbcolor 1 2 moveto 3 4 lineto 5 6 lineto closepath fill grestore\n",
		},
		{
			svgdoc.Path{Segments: corners, Fill: white},
			"gsave newpath 1 1 1 setrgbcolor 1 2 moveto 3 4 lineto 5 6 lineto fill grestore\n",
		},
		{
			svgdoc.Path{Segments: corners, Stroke: white, StrokeWidth: 2, Closed: true},
			"gsave newpath 1 1 1 setrgbcolor 2 setlinewidth 1 2 moveto 3 4 lineto 5 6 lineto closepath stroke grestore\n",
		},
		{
			svgdoc.Path{Segments: corners, Stroke: white, StrokeWidth: 2},
			"gsave newpath 1 1 1 setrgbcolor 2 setlinewidth 1 2 moveto 3 4 lineto 5 6 lineto stroke grestore\n",
		},
		{
			svgdoc.Path{Segments: corners, Fill: white, Stroke: white, StrokeWidth: 2, Closed: true},
			"gsave newpath 1 1 1 setrgbcolor 1 2 moveto 3 4 lineto 5 6 lineto closepath gsave fill grestore 1 1 1 setrgbcolor 2 setlinewidth stroke grestore\n",
		},
		{
			svgdoc.Path{Segments: corners, Fill: white, Stroke: white, StrokeWidth: 2},
			"gsave newpath 1 1 1 setrgbcolor 1 2 moveto 3 4 lineto 5 6 lineto gsave fill grestore 1 1 1 setrgbcolor 2 setlinewidth stroke grestore\n",
		},
		{
			svgdoc.Path{Segments: svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 0}}, {{X: 2, Y: 2}, {X: 3, Y: 3}}}, Fill: white, Closed: true},
			"gsave newpath 1 1 1 setrgbcolor 0 0 moveto 1 0 lineto closepath 2 2 moveto 3 3 lineto closepath fill grestore\n",
		},
	} {
		var r Renderer
		r.DrawPath(test.p)
		if got := r.out.String(); got != test.want {
			t.Errorf("expected\n%q\ngot\n%q", test.want, got)
		}
	}
}

func TestDrawPolygonIsClosed(t *testing.T) {
	var r Renderer
	r.DrawPolygon(svgdoc.Polygon{
		Corners: []svgpath.Point{{X: 1, Y: 2}, {X: 3, Y: 4}, {X: 5, Y: 6}},
		Stroke:  white, StrokeWidth: 0.5,
	})
	want := "gsave newpath 1 1 1 setrgbcolor 0.5 setlinewidth 1 2 moveto 3 4 lineto 5 6 lineto closepath stroke grestore\n"
	if got := r.out.String(); got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func sampleDocument() *svgdoc.Document {
	return svgdoc.New(10, 20).SetAuthor("tester").
		Line(svgpath.Point{X: 1, Y: 2}, svgpath.Point{X: 3, Y: 4}, &yellow, 1).
		Circle(svgpath.Point{X: 1, Y: 2}, 3, white, nil, 0).
		Path(svgpath.Subpaths{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, nil, white, 1, false).
		Polygon([]svgpath.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, white, nil, 0)
}

func TestMake(t *testing.T) {
	got := Make(sampleDocument())
	want := strings.Join([]string{
		"%!PS-Adobe-2.0 EPSF-2.0",
		"% Generated by tester",
		"%%BoundingBox: 0 0 10 20",
		"",
		"% Lines",
		"%",
		"gsave newpath 1 1 0 setrgbcolor 1 setlinewidth 1 2 moveto 3 4 lineto stroke grestore",
		"",
		"% Circles",
		"%",
		"gsave newpath 1 1 1 setrgbcolor 1 2 3 0 360 arc closepath fill grestore",
		"",
		"% Paths",
		"%",
		"gsave newpath 1 1 1 setrgbcolor 0 0 moveto 1 0 lineto 1 1 lineto closepath fill grestore",
		"gsave newpath 1 1 1 setrgbcolor 1 setlinewidth 0 0 moveto 1 1 lineto stroke grestore",
		"%%EOF",
	}, "\n")
	if got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
}

func TestMakeEmpty(t *testing.T) {
	got := Make(svgdoc.New(5, 5))
	want := "%!PS-Adobe-2.0 EPSF-2.0\n% Generated by dl\n%%BoundingBox: 0 0 5 5\n\n% Lines\n%\n\n% Circles\n%\n\n% Paths\n%\n%%EOF"
	if got != want {
		t.Errorf("expected\n%q\ngot\n%q", want, got)
	}
}

func TestAuthorStaysInComment(t *testing.T) {
	doc := svgdoc.New(10, 10).SetAuthor("x\nerasepage showpage")
	want := "%!PS-Adobe-2.0 EPSF-2.0\n% Generated by x erasepage showpage\n%%BoundingBox: 0 0 10 10\n"
	if got := Make(doc); !strings.HasPrefix(got, want) {
		t.Errorf("expected prefix %q, got %q", want, got)
	}

	var r Renderer
	r.Begin("a\r\nb\x00c", svgdoc.BoundingBox{W: 1, H: 1})
	if got := r.String(); got != "%!PS-Adobe-2.0 EPSF-2.0\n% Generated by a b c\n%%BoundingBox: 0 0 1 1" {
		t.Errorf("unexpected header %q", got)
	}
}

func TestFractionalBoundingBox(t *testing.T) {
	got := Make(svgdoc.New(40.5, 20))
	want := "% Generated by dl\n%%BoundingBox: 0 0 41 20\n%%HiResBoundingBox: 0 0 40.5 20\n\n% Lines"
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in\n%s", want, got)
	}
}

func TestMakeIdempotent(t *testing.T) {
	doc := sampleDocument()
	if Make(doc) != Make(doc) {
		t.Error("rendering twice must give the same output")
	}
}

func TestWrite(t *testing.T) {
	doc := sampleDocument()
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "out.eps")
	if err := SaveToFile(doc, name); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(content, buf.Bytes()) {
		t.Error("file and writer outputs differ")
	}
}
