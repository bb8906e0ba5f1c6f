package common

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// TimestampFormat selects which segments a rendered timestamp gets:
// zero-padded hex, decimal with thousands grouping, and derived
// milliseconds. Segments always appear in that order, with the second
// and later ones parenthesized after the first.
type TimestampFormat struct {
	Hex     bool
	Decimal bool
	Ms      bool
}

func timestampToString(value uint64, f TimestampFormat, frequency uint64, hexDigits int) string {
	var sb strings.Builder
	count := 0
	if f.Hex {
		fmt.Fprintf(&sb, "0x%0*X", hexDigits, value)
		count++
	}
	// A zero value suppresses the decimal and ms segments unless
	// nothing has been written yet, so a zero timestamp still renders.
	if f.Decimal && (value != 0 || count == 0) {
		if count == 1 {
			sb.WriteString(" (")
		}
		sb.WriteString(humanize.Comma(int64(value)))
		count++
	}
	if f.Ms && (value != 0 || count == 0) {
		switch {
		case count == 1:
			sb.WriteString(" (")
		case count > 1:
			sb.WriteString(", ")
		}
		sb.WriteString(humanize.Comma(int64(value / (frequency / 1000))))
		sb.WriteString(" ms")
		count++
	}
	if count > 1 {
		sb.WriteString(")")
	}
	return sb.String()
}

// PCRToString renders a PCR value according to the given format.
func PCRToString(pcr PCR, f TimestampFormat) string {
	return timestampToString(uint64(pcr), f, SystemClockFreq, PcrHexDigits)
}

// PTSToString renders a PTS or DTS value according to the given format.
func PTSToString(pts PTS, f TimestampFormat) string {
	return timestampToString(uint64(pts), f, TimeScale, PtsHexDigits)
}
