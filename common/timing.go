package common

// NextPCR computes the expected PCR at a given packet distance after a
// previous PCR, assuming a constant bitrate. It returns InvalidPcr if
// the previous PCR is unknown or the bitrate is zero.
func NextPCR(lastPCR PCR, distance PacketCounter, bitrate Bitrate) PCR {
	if lastPCR == InvalidPcr || bitrate == 0 {
		return InvalidPcr
	}

	next := lastPCR + PCR(uint64(distance)*PacketSizeBits*SystemClockFreq/uint64(bitrate))
	if next >= PcrWrap {
		next -= PcrWrap
	}
	return next
}

// AddPCR adds a signed offset to a PCR and wraps the result back into
// [0, PcrWrap).
func AddPCR(pcr PCR, offset int64) PCR {
	if pcr > MaxPcr {
		return InvalidPcr
	}
	// The remainder keeps the sign of the dividend in Go, so a negative
	// intermediate must be pushed back into range explicitly.
	res := (int64(pcr) + offset) % PcrWrap
	if res < 0 {
		res += PcrWrap
	}
	return PCR(res)
}

// DiffPCR returns the number of 27MHz ticks to advance from pcr1 to
// pcr2, assuming at most one wrap between the two observations.
func DiffPCR(pcr1, pcr2 PCR) PCR {
	if pcr1 > MaxPcr || pcr2 > MaxPcr {
		return InvalidPcr
	}
	if pcr2 >= pcr1 {
		return pcr2 - pcr1
	}
	return PcrWrap + pcr2 - pcr1
}

// wrapUpPCR reports whether going forward from pcr1 to pcr2 crosses the
// wrap point, i.e. the unwrapped distance would exceed half the scale.
func wrapUpPCR(pcr1, pcr2 PCR) bool {
	return pcr1 > pcr2 && pcr1-pcr2 > PcrWrap/2
}

// AbsDiffPCR returns the smallest circular distance between two PCR
// values, whichever direction around the clock is shorter. It is
// symmetric in its arguments.
func AbsDiffPCR(pcr1, pcr2 PCR) PCR {
	switch {
	case pcr1 > MaxPcr || pcr2 > MaxPcr:
		return InvalidPcr
	case wrapUpPCR(pcr1, pcr2):
		return PcrWrap + pcr2 - pcr1
	case wrapUpPCR(pcr2, pcr1):
		return PcrWrap + pcr1 - pcr2
	case pcr2 >= pcr1:
		return pcr2 - pcr1
	default:
		return pcr1 - pcr2
	}
}

// DiffPTS returns the number of 90kHz ticks to advance from pts1 to
// pts2, assuming at most one wrap between the two observations.
func DiffPTS(pts1, pts2 PTS) PTS {
	if pts1 > MaxPts || pts2 > MaxPts {
		return InvalidPts
	}
	if pts2 >= pts1 {
		return pts2 - pts1
	}
	return PtsWrap + pts2 - pts1
}
