package internal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Comcast/gots/v2/packet"
	"github.com/Comcast/gots/v2/psi"
	"github.com/asticode/go-astits"
	"github.com/garethfenn/tsduck/common"
)

type Options struct {
	MaxNrSamples    int
	Version         bool
	Indent          bool
	ShowStreamInfo  bool
	ShowService     bool
	ShowTimestamps  bool
	ShowStatistics  bool
	ShowSCTE35      bool
	ShowHex         bool
	ShowDecimal     bool
	ShowMs          bool
	DeclaredBitrate uint64
	PidsToShow      string
}

func CreateFullOptions(max int) Options {
	return Options{
		MaxNrSamples:   max,
		ShowStreamInfo: true,
		ShowService:    true,
		ShowTimestamps: true,
		ShowStatistics: true,
		ShowSCTE35:     true,
		ShowHex:        true,
		ShowDecimal:    true,
		ShowMs:         true,
	}
}

// TimestampFormat maps the display flags to a rendering format.
func (o Options) TimestampFormat() common.TimestampFormat {
	return common.TimestampFormat{Hex: o.ShowHex, Decimal: o.ShowDecimal, Ms: o.ShowMs}
}

type OptionParseFunc func() Options
type RunableFunc func(ctx context.Context, w io.Writer, f io.Reader, o Options) error

type ElementaryStreamInfo struct {
	PID   uint16          `json:"pid"`
	Codec string          `json:"codec"`
	Type  string          `json:"type"`
	Class common.PIDClass `json:"class"`
}

func ParseAstitsElementaryStreamInfo(es *astits.PMTElementaryStream) *ElementaryStreamInfo {
	var streamInfo *ElementaryStreamInfo
	switch es.StreamType {
	case astits.StreamTypeH264Video:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "AVC", Type: "video", Class: common.PIDClassVideo}
	case astits.StreamTypeH265Video:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "HEVC", Type: "video", Class: common.PIDClassVideo}
	case astits.StreamTypeAACAudio:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "AAC", Type: "audio", Class: common.PIDClassAudio}
	case astits.StreamTypeSCTE35:
		streamInfo = &ElementaryStreamInfo{PID: es.ElementaryPID, Codec: "SCTE35", Type: "cue", Class: common.PIDClassCue}
	}

	return streamInfo
}

func ParseElementaryStreamInfo(es psi.PmtElementaryStream) *ElementaryStreamInfo {
	pid := uint16(es.ElementaryPid())
	var streamInfo *ElementaryStreamInfo
	switch es.StreamType() {
	case psi.PmtStreamTypeMpeg4VideoH264:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "AVC", Type: "video", Class: common.PIDClassVideo}
	case psi.PmtStreamTypeMpeg4VideoH265:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "HEVC", Type: "video", Class: common.PIDClassVideo}
	case psi.PmtStreamTypeAac:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "AAC", Type: "audio", Class: common.PIDClassAudio}
	case psi.PmtStreamTypeScte35:
		streamInfo = &ElementaryStreamInfo{PID: pid, Codec: "SCTE35", Type: "cue", Class: common.PIDClassCue}
	}

	return streamInfo
}

func ParsePacketToPAT(pkt *packet.Packet) (pat psi.PAT, e error) {
	if !packet.IsPat(pkt) {
		return nil, fmt.Errorf("unable to parse packet to PAT")
	}
	pay, err := packet.Payload(pkt)
	if err != nil {
		return nil, err
	}

	pat, err = psi.NewPAT(pay)
	if err != nil {
		return nil, err
	}

	return pat, nil
}

func ParsePidsFromString(input string) []int {
	words := strings.Fields(input)
	var pids []int
	for _, word := range words {
		number, err := strconv.Atoi(word)
		if err != nil {
			continue
		}
		pids = append(pids, number)
	}
	return pids
}

func ParseParams(function OptionParseFunc) (o Options, inFile string) {
	o = function()
	if o.Version {
		fmt.Printf("%s version %s\n", toolName(), GetVersion())
		os.Exit(0)
	}
	if len(flag.Args()) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inFile = flag.Args()[0]
	return o, inFile
}

func toolName() string {
	parts := strings.Split(os.Args[0], "/")
	return parts[len(parts)-1]
}

func Execute(w io.Writer, o Options, inFile string, function RunableFunc) error {
	// Create a cancellable context in case you want to stop reading packets/data any time you want
	ctx, cancel := context.WithCancel(context.Background())
	// Handle SIGTERM signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT)
	go func() {
		<-ch
		cancel()
	}()

	var f io.Reader
	if inFile == "-" {
		f = os.Stdin
	} else {
		var err error
		fh, err := os.Open(inFile)
		if err != nil {
			log.Fatal(err)
		}
		f = fh
		defer fh.Close()
	}

	err := function(ctx, w, f, o)
	if err != nil {
		return err
	}
	return nil
}
