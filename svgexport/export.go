// Chains the reading, conversion and rendering steps,
// choosing the backend from the output format.
package svgexport

import (
	"fmt"
	"io"
	"os"

	"github.com/synesenom/dl/svgdoc"
	"github.com/synesenom/dl/svgdom"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgeps"
	"github.com/synesenom/dl/svgpdf"
	"github.com/synesenom/dl/svgraster"
)

// Options configures a conversion.
type Options struct {
	svgdom.Options
	// Metrics is only used by the PNG format.
	Metrics svgraster.Metrics
}

// Write renders `doc` to `w`, in the given format.
func Write(w io.Writer, doc *svgdoc.Document, format svgdraw.Format, metrics svgraster.Metrics) error {
	switch format {
	case svgdraw.EPS:
		return svgeps.Write(doc, w)
	case svgdraw.PDF:
		return svgpdf.Make(doc, w)
	case svgdraw.PNG:
		return svgraster.WritePNG(doc, w, metrics)
	default:
		return fmt.Errorf("unsupported output format %s", format)
	}
}

// Convert reads the SVG document in `r` and writes it
// to `w`, in the given format.
func Convert(r io.Reader, w io.Writer, format svgdraw.Format, opts Options) error {
	root, err := svgdom.Read(r)
	if err != nil {
		return fmt.Errorf("reading svg: %w", err)
	}
	doc, err := svgdom.Convert(root, opts.Options)
	if err != nil {
		return fmt.Errorf("converting svg: %w", err)
	}
	return Write(w, doc, format, opts.Metrics)
}

// ConvertFile converts the named SVG file into the file `output`.
func ConvertFile(input, output string, format svgdraw.Format, opts Options) error {
	in, err := os.Open(input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err = Convert(in, out, format, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
