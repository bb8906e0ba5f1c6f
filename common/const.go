package common

import "math"

const (
	PacketSize     = 188
	PacketSizeBits = PacketSize * 8
	// TimeScale is the 90kHz clock used for PTS and DTS values
	TimeScale = 90000
	// SystemClockFreq is the 27MHz system clock used for PCR values
	SystemClockFreq = 27000000
	// PtsWrap and PcrWrap are the wrap-around moduli of the two clocks
	PtsWrap = 1 << 33
	PcrWrap = PtsWrap * 300
	// MaxPts and MaxPcr are the largest valid counter values
	MaxPts = PtsWrap - 1
	MaxPcr = PcrWrap - 1
	// Hex digits needed to print a full counter value
	PcrHexDigits = 11
	PtsHexDigits = 9
)

// PCR is a 27MHz program clock reference counter in [0, PcrWrap),
// or InvalidPcr when unknown.
type PCR uint64

// PTS is a 90kHz presentation or decode timestamp in [0, PtsWrap),
// or InvalidPts when unknown.
type PTS uint64

const (
	InvalidPcr PCR = math.MaxUint64
	InvalidPts PTS = math.MaxUint64
)

// Valid returns true if the value is inside the counter range.
func (p PCR) Valid() bool {
	return p <= MaxPcr
}

// Valid returns true if the value is inside the counter range.
func (p PTS) Valid() bool {
	return p <= MaxPts
}

// PacketCounter counts 188-byte transport packets between two
// positions in a stream.
type PacketCounter uint64

func SignedPTSDiff(p2, p1 int64) int64 {
	return (p2-p1+3*PtsWrap/2)%PtsWrap - PtsWrap/2
}

func UnsignedPTSDiff(p2, p1 int64) int64 {
	return (p2 - p1 + 2*PtsWrap) % PtsWrap
}

func AddPTS(p1, p2 int64) int64 {
	return (p1 + p2) % PtsWrap
}
