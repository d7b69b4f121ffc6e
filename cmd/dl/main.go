// Command dl converts SVG drawings to EPS, PDF or PNG.
//
//	dl [-format eps|pdf|png] [-o out] [-author a] [-radians] [-strict] [-scale s] [-max-pixels n] file.svg
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/synesenom/dl/svgdom"
	"github.com/synesenom/dl/svgdraw"
	"github.com/synesenom/dl/svgexport"
	"github.com/synesenom/dl/svgpath"
)

func main() {
	var (
		format  = flag.String("format", "", "output format: eps, pdf or png (default: from -o, or eps)")
		output  = flag.String("o", "", "output file (default: input file with the format extension)")
		author  = flag.String("author", "", "author written in the document")
		radians = flag.Bool("radians", false, "read rotate and skew angles in radians")
		strict  = flag.Bool("strict", false, "fail on unsupported or invalid elements")
		scale   = flag.Float64("scale", 1, "pixels per unit, for png output")
		pixels  = flag.Int("max-pixels", 0, "pixel budget of png output (default: 1<<25)")
		verbose = flag.Bool("v", false, "log skipped elements")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: dl [flags] file.svg\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	f, err := outputFormat(*format, *output)
	if err != nil {
		log.Fatal(err)
	}
	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + f.String()
	}

	opts := svgexport.Options{}
	opts.Author = *author
	opts.Metrics.Scale = *scale
	opts.Metrics.MaxPixels = *pixels
	if *radians {
		opts.Transform.Unit = svgpath.Radians
	}
	opts.ErrorMode = svgdom.WarnErrorMode
	if *strict {
		opts.ErrorMode = svgdom.StrictErrorMode
	}
	if *verbose {
		svgdom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := svgexport.ConvertFile(input, out, f, opts); err != nil {
		log.Fatalf("converting %s: %v", input, err)
	}
	log.Printf("%s written", out)
}

// outputFormat uses the -format flag, or else the extension of the output file.
func outputFormat(format, output string) (svgdraw.Format, error) {
	if format != "" {
		return svgdraw.ParseFormat(format)
	}
	if ext := filepath.Ext(output); ext != "" {
		return svgdraw.ParseFormat(ext)
	}
	return svgdraw.EPS, nil
}
