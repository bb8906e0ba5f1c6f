package common

// Bitrate is a transport bitrate in bits per second. Zero means that
// the bitrate is unknown.
type Bitrate uint64

// BitrateConfidence ranks how trustworthy a bitrate estimate is.
// A higher value wins when two estimates disagree.
type BitrateConfidence int

const (
	// BitrateConfidenceLow is a guess or externally signalled value
	BitrateConfidenceLow BitrateConfidence = iota
	// BitrateConfidencePtsRate is derived from PTS spacing
	BitrateConfidencePtsRate
	// BitrateConfidencePcrRate is derived from the PCR reference clock
	BitrateConfidencePcrRate
	// BitrateConfidenceOverride is set explicitly by the user
	BitrateConfidenceOverride
)

var bitrateConfidenceNames = map[BitrateConfidence]string{
	BitrateConfidenceLow:      "low",
	BitrateConfidencePtsRate:  "pts-rate",
	BitrateConfidencePcrRate:  "pcr-rate",
	BitrateConfidenceOverride: "override",
}

func (c BitrateConfidence) String() string {
	if name, ok := bitrateConfidenceNames[c]; ok {
		return name
	}
	return "unknown"
}

// SelectBitrate merges two bitrate estimates into a single best one.
// A zero bitrate always yields to the other value. With equal
// confidence the two are averaged, otherwise the higher confidence
// wins.
func SelectBitrate(bitrate1 Bitrate, brc1 BitrateConfidence, bitrate2 Bitrate, brc2 BitrateConfidence) Bitrate {
	switch {
	case bitrate1 == 0:
		return bitrate2
	case bitrate2 == 0:
		return bitrate1
	case brc1 == brc2:
		return (bitrate1 + bitrate2) / 2
	case brc1 > brc2:
		return bitrate1
	default:
		return bitrate2
	}
}
