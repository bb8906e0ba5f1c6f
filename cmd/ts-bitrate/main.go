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

%s measures the bitrate of a TS file from its PCR values and reports
PCR intervals and jitter per PCR-carrying PID. The PCR-based rate is
reconciled with a PTS-based estimate and an optional declared rate.
SCTE35 splice times are reported when present.
`

func parseOptions() internal.Options {
	opts := internal.Options{ShowStreamInfo: true, ShowSCTE35: true}
	flag.Uint64Var(&opts.DeclaredBitrate, "bitrate", 0, "declared bitrate in bits per second (overrides measurement)")
	flag.BoolVar(&opts.ShowHex, "hex", true, "render timestamps in hex")
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

func parseBitrate(ctx context.Context, w io.Writer, f io.Reader, o internal.Options) error {
	return internal.ParseBitrate(ctx, w, f, o)
}

func main() {
	o, inFile := internal.ParseParams(parseOptions)
	err := internal.Execute(os.Stdout, o, inFile, parseBitrate)
	if err != nil {
		log.Fatal(err)
	}
}
