// Implements a raster backend to render documents,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgpath"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// DefaultMaxPixels is the pixel budget used when Metrics.MaxPixels is zero.
const DefaultMaxPixels = 1 << 25

// ErrImageTooLarge is returned when the image would exceed the pixel budget.
var ErrImageTooLarge = errors.New("image too large")

// Metrics controls the size of the output image.
type Metrics struct {
	// Scale is the number of pixels per document unit.
	// Zero means 1.
	Scale float64
	// Transparent disables the white background.
	Transparent bool
	// MaxPixels bounds width x height of the image.
	// Zero means DefaultMaxPixels.
	MaxPixels int
}

func (m Metrics) maxPixels() int {
	if m.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return m.MaxPixels
}

func (m Metrics) scale() float64 {
	if m.Scale <= 0 {
		return 1
	}
	return m.Scale
}

// Size returns the image size used for a document of size `box`.
func (m Metrics) Size(box svgdoc.BoundingBox) (w, h int) {
	s := m.scale()
	return int(math.Ceil(box.W * s)), int(math.Ceil(box.H * s))
}

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	scale, height float64
}

// NewRenderer returns a renderer drawing through `scanner`,
// on an image of size `width` x `height`.
// Document units are multiplied by `scale`.
func NewRenderer(width, height int, scale float64, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
		scale:  scale,
	}
}

// checkSize returns the image size for `box`, or ErrImageTooLarge.
func (m Metrics) checkSize(box svgdoc.BoundingBox) (w, h int, err error) {
	s := m.scale()
	fw, fh := math.Ceil(box.W*s), math.Ceil(box.H*s)
	if !(fw*fh <= float64(m.maxPixels())) {
		return 0, 0, fmt.Errorf("%gx%g pixels, budget %d: %w", fw, fh, m.maxPixels(), ErrImageTooLarge)
	}
	return int(fw), int(fh), nil
}

// Rasterize uses a ScannerGV instance to render
// the document into an image and returns it.
// The image must fit in the pixel budget of `metrics`.
func Rasterize(doc *svgdoc.Document, metrics Metrics) (*image.RGBA, error) {
	w, h, err := metrics.checkSize(doc.BoundingBox())
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if !metrics.Transparent {
		draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	svgdraw.Draw(doc, NewRenderer(w, h, metrics.scale(), scanner))
	return img, nil
}

// WritePNG renders the document and encodes it as PNG into `w`.
func WritePNG(doc *svgdoc.Document, w io.Writer, metrics Metrics) error {
	img, err := Rasterize(doc, metrics)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// toFixed maps a document point to the image space:
// the document grows upward, the image downward.
func (rd *Renderer) toFixed(p svgpath.Point) fixed.Point26_6 {
	x, y := p.X*rd.scale, (rd.height-p.Y)*rd.scale
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (rd *Renderer) Begin(_ string, box svgdoc.BoundingBox) { rd.height = box.H }

func (rd *Renderer) Section(svgdraw.Section) {}

func (rd *Renderer) End() {}

// setStroke uses the PostScript defaults:
// butt caps, miter joins with a limit of 10.
func (rd *Renderer) setStroke(width float64) {
	rd.dasher.SetStroke(fixed.Int26_6(width*rd.scale*64), fixed.Int26_6(10*64),
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, nil, 0)
}

func (rd *Renderer) DrawLine(l svgdoc.Line) {
	rd.dasher.Clear()
	rd.setStroke(l.StrokeWidth)
	rd.dasher.Start(rd.toFixed(l.Src))
	rd.dasher.Line(rd.toFixed(l.Dst))
	rd.dasher.Stop(false)
	rd.dasher.Scanner.SetColor(l.Stroke)
	rd.dasher.Draw()
}

func (rd *Renderer) DrawCircle(c svgdoc.Circle) {
	addCircle := func(a rasterx.Adder) {
		rasterx.AddCircle(c.Center.X*rd.scale, (rd.height-c.Center.Y)*rd.scale, c.Radius*rd.scale, a)
	}
	rd.paint(addCircle, c.Fill, c.Stroke, c.StrokeWidth)
}

func (rd *Renderer) DrawPolygon(p svgdoc.Polygon) {
	rd.paint(rd.subpaths(svgpath.Subpaths{p.Corners}, true), p.Fill, p.Stroke, p.StrokeWidth)
}

func (rd *Renderer) DrawPath(p svgdoc.Path) {
	rd.paint(rd.subpaths(p.Segments, p.Closed), p.Fill, p.Stroke, p.StrokeWidth)
}

func (rd *Renderer) subpaths(segments svgpath.Subpaths, closed bool) func(rasterx.Adder) {
	return func(a rasterx.Adder) {
		for _, sub := range segments {
			for i, p := range sub {
				if i == 0 {
					a.Start(rd.toFixed(p))
				} else {
					a.Line(rd.toFixed(p))
				}
			}
			a.Stop(closed)
		}
	}
}

// paint fills then strokes the path added by `add`.
func (rd *Renderer) paint(add func(rasterx.Adder), fill, stroke *svgdoc.Color, width float64) {
	if fill == nil && stroke == nil {
		panic("svgraster: primitive without paint")
	}
	if fill != nil {
		rd.filler.Clear()
		add(rd.filler)
		rd.filler.Scanner.SetColor(*fill)
		rd.filler.Draw()
	}
	if stroke != nil {
		rd.dasher.Clear()
		rd.setStroke(width)
		add(rd.dasher)
		rd.dasher.Scanner.SetColor(*stroke)
		rd.dasher.Draw()
	}
}
