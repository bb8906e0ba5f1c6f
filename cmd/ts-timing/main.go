package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/garethfenn/tsduck/internal"
)

var usg = `Usage of %s:

%s lists PTS/DTS timestamps of the elementary streams in a TS file
and reports timing statistics (steps, frame rate) per PID.
Timestamps can be rendered as hex, decimal and/or milliseconds.
`

func parseOptions() internal.Options {
	opts := internal.Options{ShowStreamInfo: true, ShowTimestamps: true, ShowStatistics: true}
	flag.IntVar(&opts.MaxNrSamples, "max", 0, "max nr timestamp samples to report (0 is no limit)")
	flag.BoolVar(&opts.ShowService, "service", false, "show service information")
	flag.StringVar(&opts.PidsToShow, "pids", "", "only report the given pids (split by space), e.g. \"256 257\"")
	flag.BoolVar(&opts.ShowHex, "hex", false, "render timestamps in hex")
	flag.BoolVar(&opts.ShowDecimal, "dec", true, "render timestamps in decimal")
	flag.BoolVar(&opts.ShowMs, "ms", false, "render timestamps as milliseconds")
	flag.BoolVar(&opts.Indent, "indent", false, "indent JSON output")
	flag.BoolVar(&opts.Version, "version", false, "print version")

	flag.Usage = func() {
		parts := strings.Split(os.Args[0], "/")
		name := parts[len(parts)-1]
		fmt.Fprintf(os.Stderr, usg, name, name)
		fmt.Fprintf(os.Stderr, "\nRun as: %s [options] file.ts (- for stdin) with options:\n\n", name)
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

func parseTimestamps(ctx context.Context, w io.Writer, f io.Reader, o internal.Options) error {
	return internal.ParseTimestamps(ctx, w, f, o)
}

func main() {
	o, inFile := internal.ParseParams(parseOptions)
	err := internal.Execute(os.Stdout, o, inFile, parseTimestamps)
	if err != nil {
		log.Fatal(err)
	}
}
