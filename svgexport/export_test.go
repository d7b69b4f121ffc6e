package svgexport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synesenom/dl/svgdom"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgraster"
)

const drawing = `<svg xmlns="http://www.w3.org/2000/svg" width="40" height="20">
	<line x1="0" y1="0" x2="40" y2="20" stroke="black"/>
	<circle cx="10" cy="10" r="5" fill="red"/>
	<path d="M0,0 L10,0 L10,10 Z" fill="blue" stroke="green"/>
</svg>`

func TestConvertFormats(t *testing.T) {
	for _, test := range []struct {
		format svgdraw.Format
		prefix string
	}{
		{svgdraw.EPS, "%!PS-Adobe-2.0 EPSF-2.0\n% Generated by dl\n"},
		{svgdraw.PDF, "%PDF-"},
		{svgdraw.PNG, "\x89PNG"},
	} {
		var buf bytes.Buffer
		if err := Convert(strings.NewReader(drawing), &buf, test.format, Options{}); err != nil {
			t.Fatalf("%s: %s", test.format, err)
		}
		if !strings.HasPrefix(buf.String(), test.prefix) {
			t.Errorf("%s: unexpected output %q", test.format, buf.String()[:min(20, buf.Len())])
		}
	}
}

func TestConvertOptions(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Options: svgdom.Options{Author: "tester"}}
	if err := Convert(strings.NewReader(drawing), &buf, svgdraw.EPS, opts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "% Generated by tester\n") {
		t.Error("missing author")
	}

	small, large := new(bytes.Buffer), new(bytes.Buffer)
	if err := Convert(strings.NewReader(drawing), small, svgdraw.PNG, Options{}); err != nil {
		t.Fatal(err)
	}
	opts = Options{Metrics: svgraster.Metrics{Scale: 4}}
	if err := Convert(strings.NewReader(drawing), large, svgdraw.PNG, opts); err != nil {
		t.Fatal(err)
	}
	if large.Len() <= small.Len() {
		t.Errorf("scaled image should be larger: %d <= %d", large.Len(), small.Len())
	}
}

func TestConvertErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Convert(strings.NewReader("<svg"), &buf, svgdraw.EPS, Options{}); err == nil {
		t.Error("expected an error for invalid xml")
	}
	err := Convert(strings.NewReader(`<html width="1" height="1"/>`), &buf, svgdraw.EPS, Options{})
	if !errors.Is(err, svgdom.ErrNotSVG) {
		t.Errorf("expected ErrNotSVG, got %v", err)
	}
	err = Convert(strings.NewReader(`<svg width="1" height="1"><ellipse/></svg>`), &buf, svgdraw.EPS,
		Options{Options: svgdom.Options{ErrorMode: svgdom.StrictErrorMode}})
	if !errors.Is(err, svgdom.ErrUnsupportedElement) {
		t.Errorf("expected ErrUnsupportedElement, got %v", err)
	}
	if err := Write(&buf, nil, svgdraw.Format(10), svgraster.Metrics{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input, output := filepath.Join(dir, "in.svg"), filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(input, []byte(drawing), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ConvertFile(input, output, svgdraw.PDF, Options{}); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Error("invalid pdf file")
	}

	if err := ConvertFile(filepath.Join(dir, "missing.svg"), output, svgdraw.PDF, Options{}); err == nil {
		t.Error("expected an error for a missing input")
	}
}
