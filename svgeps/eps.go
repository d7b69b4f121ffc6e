// Implements an EPS backend, writing documents
// as Encapsulated PostScript programs.
package svgeps

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgpath"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// PostScript operators, padded so that they can be
// concatenated; the padding is removed by reduce.
const (
	kwGsave        = " gsave "
	kwGrestore     = " grestore "
	kwNewpath      = " newpath "
	kwSetlinewidth = " setlinewidth "
	kwMoveto       = " moveto "
	kwLineto       = " lineto "
	kwSetrgbcolor  = " setrgbcolor "
	kwFill         = " fill "
	kwStroke       = " stroke "
	kwArc          = " arc "
	kwClosepath    = " closepath "
)

const (
	header = "%!PS-Adobe-2.0 EPSF-2.0"
	footer = "%%EOF"
)

// Renderer accumulates an EPS document.
// Points are written as given: the document must already
// be expressed in the y-up PostScript space.
type Renderer struct {
	out strings.Builder
}

// Make returns the EPS program drawing `doc`.
func Make(doc *svgdoc.Document) string {
	var r Renderer
	svgdraw.Draw(doc, &r)
	return r.String()
}

// Write writes the EPS program drawing `doc` to `w`.
func Write(doc *svgdoc.Document, w io.Writer) error {
	_, err := io.WriteString(w, Make(doc))
	return err
}

// SaveToFile writes the EPS program drawing `doc` to the named file.
func SaveToFile(doc *svgdoc.Document, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = Write(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// String returns the document written so far.
func (r *Renderer) String() string { return reduce(r.out.String()) }

func (r *Renderer) Begin(author string, box svgdoc.BoundingBox) {
	r.out.Reset()
	r.out.WriteString(header + "\n% Generated by " + comment(author) + "\n")
	w, h := math.Ceil(box.W), math.Ceil(box.H)
	r.out.WriteString("%%BoundingBox: 0 0 " + formatNumber(w) + " " + formatNumber(h) + "\n")
	if w != box.W || h != box.H {
		r.out.WriteString("%%HiResBoundingBox: 0 0 " + formatNumber(box.W) + " " + formatNumber(box.H) + "\n")
	}
}

// comment keeps `text` on a single comment line.
func comment(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
}

func (r *Renderer) Section(s svgdraw.Section) {
	r.out.WriteString("\n% " + s.String() + "\n%\n")
}

func (r *Renderer) DrawLine(l svgdoc.Line) { r.out.WriteString(drawLine(l)) }

func (r *Renderer) DrawCircle(c svgdoc.Circle) { r.out.WriteString(drawCircle(c)) }

func (r *Renderer) DrawPolygon(p svgdoc.Polygon) {
	r.out.WriteString(drawShape(polygonGeometry(p.Corners), p.Fill, p.Stroke, p.StrokeWidth))
}

func (r *Renderer) DrawPath(p svgdoc.Path) {
	r.out.WriteString(drawShape(pathGeometry(p.Segments, p.Closed), p.Fill, p.Stroke, p.StrokeWidth))
}

func (r *Renderer) End() { r.out.WriteString(footer) }

// reduce collapses runs of spaces, removes the spaces
// starting a line and trims the text.
func reduce(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' && i > 0 && text[i-1] == ' ' {
			continue
		}
		b.WriteByte(text[i])
	}
	return strings.ReplaceAll(b.String(), "\n ", "\n")
}

// formatNumber uses the shortest decimal representation.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0 // avoids -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func point(p svgpath.Point) string {
	return formatNumber(p.X) + " " + formatNumber(p.Y)
}

func setColor(c svgdoc.Color) string {
	return formatNumber(c.R) + " " + formatNumber(c.G) + " " + formatNumber(c.B) + kwSetrgbcolor
}

func drawLine(l svgdoc.Line) string {
	res := kwGsave + kwNewpath
	res += setColor(l.Stroke)
	res += formatNumber(l.StrokeWidth) + kwSetlinewidth
	res += point(l.Src) + kwMoveto + point(l.Dst) + kwLineto + kwStroke
	res += kwGrestore
	return reduce(res) + "\n"
}

func drawCircle(c svgdoc.Circle) string {
	geometry := point(c.Center) + " " + formatNumber(c.Radius) + " 0 360" + kwArc + kwClosepath
	return drawShape(geometry, c.Fill, c.Stroke, c.StrokeWidth)
}

func polygonGeometry(corners []svgpath.Point) string {
	return pathGeometry(svgpath.Subpaths{corners}, true)
}

func pathGeometry(segments svgpath.Subpaths, closed bool) string {
	var b strings.Builder
	for _, sub := range segments {
		for i, p := range sub {
			b.WriteString(point(p))
			if i == 0 {
				b.WriteString(kwMoveto)
			} else {
				b.WriteString(kwLineto)
			}
		}
		if closed {
			b.WriteString(kwClosepath)
		}
	}
	return b.String()
}

// drawShape paints `geometry`, following the fill only,
// stroke only and fill then stroke variants.
func drawShape(geometry string, fill, stroke *svgdoc.Color, width float64) string {
	res := kwGsave + kwNewpath
	switch {
	case fill != nil && stroke == nil:
		res += setColor(*fill)
		res += geometry + kwFill
	case fill == nil && stroke != nil:
		res += setColor(*stroke)
		res += formatNumber(width) + kwSetlinewidth
		res += geometry + kwStroke
	case fill != nil && stroke != nil:
		res += setColor(*fill)
		res += geometry + kwGsave + kwFill + kwGrestore
		res += setColor(*stroke)
		res += formatNumber(width) + kwSetlinewidth + kwStroke
	default:
		panic("svgeps: primitive without paint")
	}
	res += kwGrestore
	return reduce(res) + "\n"
}
