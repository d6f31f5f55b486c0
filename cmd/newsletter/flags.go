package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// generateFlags holds all flags for the newsletter CLI.
type generateFlags struct {
	workbook  string
	images    []string // repeated key=path pairs
	session   string
	output    string
	assets    string
	pdf       bool
	rawImages bool
	timeout   string
	config    string
	quiet     bool
	verbose   bool
	version   bool
}

// parseFlags parses command-line flags.
func parseFlags(args []string) (*generateFlags, error) {
	fs := flag.NewFlagSet("newsletter", flag.ContinueOnError)
	f := &generateFlags{}

	fs.StringVarP(&f.workbook, "excel", "x", "", "Excel workbook path")
	fs.StringArrayVarP(&f.images, "image", "i", nil, "uploaded image as key=path (repeatable)")
	fs.StringVarP(&f.session, "session", "s", "", "session name for the output directory")
	fs.StringVarP(&f.output, "out", "o", "", "output root directory")
	fs.StringVarP(&f.assets, "assets", "a", "", "asset directory (static images, template overrides)")
	fs.BoolVarP(&f.pdf, "pdf", "p", false, "also print the newsletter to PDF")
	fs.BoolVar(&f.rawImages, "raw-images", false, "embed uploaded images without resizing or recompression")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF print timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(fs.Output()) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// printUsage writes CLI usage to w.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, `newsletter - generate a printable HTML newsletter from an Excel workbook

Usage:
  newsletter --excel data.xlsx --session aug-2024 [flags]

Flags:
  -x, --excel string     Excel workbook path (required)
  -i, --image key=path   uploaded image, repeatable
  -s, --session string   session name for the output directory
  -o, --out string       output root directory (default "generated")
  -a, --assets string    asset directory with static/images and overrides
  -p, --pdf              also print the newsletter to PDF
      --raw-images       embed uploaded images without resizing or recompression
  -t, --timeout string   PDF print timeout (e.g., 30s, 2m)
  -c, --config string    config file name or path
  -q, --quiet            only show errors
  -v, --verbose          show detailed progress
      --version          print version and exit`)
}
