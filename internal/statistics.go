package internal

import (
	"github.com/garethfenn/tsduck/common"
)

type StreamStatistics struct {
	Type       string  `json:"streamType"`
	Pid        uint16  `json:"pid"`
	FrameRate  float64 `json:"frameRate"`
	TimeStamps []int64 `json:"-"`
	FirstPTS   string  `json:"firstPTS,omitempty"`
	LastPTS    string  `json:"lastPTS,omitempty"`
	MaxStep    int64   `json:"maxStep,omitempty"`
	MinStep    int64   `json:"minStep,omitempty"`
	AvgStep    int64   `json:"avgStep,omitempty"`
	// Errors
	Errors []string `json:"errors,omitempty"`
}

func (p *JsonPrinter) PrintStatistics(s StreamStatistics, f common.TimestampFormat, show bool) {
	s.calculateFrameRate(common.TimeScale)
	if len(s.TimeStamps) > 0 {
		s.FirstPTS = common.PTSToString(common.PTS(s.TimeStamps[0]), f)
		s.LastPTS = common.PTSToString(common.PTS(s.TimeStamps[len(s.TimeStamps)-1]), f)
	}
	p.Print(s, show)
}

func sliceMinMaxAverage(values []int64) (min, max, avg int64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	min = values[0]
	max = values[0]
	sum := int64(0)
	for _, number := range values {
		if number < min {
			min = number
		}
		if number > max {
			max = number
		}
		sum += number
	}
	avg = sum / int64(len(values))
	return min, max, avg
}

func CalculateSteps(timestamps []int64) []int64 {
	if len(timestamps) < 2 {
		return nil
	}

	// PTS/DTS are 33-bit values, so they wrap around after 26.5 hours
	steps := make([]int64, len(timestamps)-1)
	for i := 0; i < len(timestamps)-1; i++ {
		steps[i] = common.SignedPTSDiff(timestamps[i+1], timestamps[i])
	}
	return steps
}

// Calculate frame rate from DTS or PTS steps
func (s *StreamStatistics) calculateFrameRate(timescale int64) {
	if len(s.TimeStamps) < 2 {
		s.Errors = append(s.Errors, "too few timestamps to calculate frame rate")
		return
	}

	steps := CalculateSteps(s.TimeStamps)
	minStep, maxStep, avgStep := sliceMinMaxAverage(steps)
	if maxStep != minStep {
		s.Errors = append(s.Errors, "irregular PTS/DTS steps")
		s.MinStep, s.MaxStep, s.AvgStep = minStep, maxStep, avgStep
	}
	if avgStep != 0 {
		s.FrameRate = float64(timescale) / float64(avgStep)
	}
}

// PcrTracker accumulates the PCR observations of one PID and derives
// bitrate and jitter figures from them.
type PcrTracker struct {
	pid         uint16
	first       common.PCR
	firstIndex  common.PacketCounter
	last        common.PCR
	lastIndex   common.PacketCounter
	count       int
	minInterval common.PCR
	maxInterval common.PCR
	maxJitter   common.PCR
	estimate    common.Bitrate
}

func NewPcrTracker(pid uint16) *PcrTracker {
	return &PcrTracker{
		pid:   pid,
		first: common.InvalidPcr,
		last:  common.InvalidPcr,
	}
}

// Add records a PCR observed at the given packet index. Invalid values
// are ignored.
func (t *PcrTracker) Add(index common.PacketCounter, pcr common.PCR) {
	if !pcr.Valid() {
		return
	}
	if t.count == 0 {
		t.first = pcr
		t.firstIndex = index
	} else {
		interval := common.DiffPCR(t.last, pcr)
		if t.count == 1 || interval < t.minInterval {
			t.minInterval = interval
		}
		if interval > t.maxInterval {
			t.maxInterval = interval
		}

		distance := index - t.lastIndex
		if t.estimate != 0 {
			// Compare the observation against where a constant-rate
			// stream would have put it.
			predicted := common.NextPCR(t.last, distance, t.estimate)
			jitter := common.AbsDiffPCR(predicted, pcr)
			if jitter.Valid() && jitter > t.maxJitter {
				t.maxJitter = jitter
			}
		}
		if interval > 0 {
			inst := common.Bitrate(uint64(distance) * common.PacketSizeBits * common.SystemClockFreq / uint64(interval))
			t.estimate = common.SelectBitrate(t.estimate, common.BitrateConfidencePcrRate,
				inst, common.BitrateConfidencePcrRate)
		}
	}
	t.last = pcr
	t.lastIndex = index
	t.count++
}

// Bitrate returns the average bitrate over the full observed span.
func (t *PcrTracker) Bitrate() common.Bitrate {
	if t.count < 2 {
		return 0
	}
	span := common.DiffPCR(t.first, t.last)
	if !span.Valid() || span == 0 {
		return 0
	}
	packets := uint64(t.lastIndex - t.firstIndex)
	return common.Bitrate(packets * common.PacketSizeBits * common.SystemClockFreq / uint64(span))
}

// ptsRateTracker estimates a stream bitrate from the packet distance
// between the first and last observed PTS.
type ptsRateTracker struct {
	first      common.PTS
	last       common.PTS
	firstIndex common.PacketCounter
	lastIndex  common.PacketCounter
	count      int
}

func (t *ptsRateTracker) Add(index common.PacketCounter, pts common.PTS) {
	if !pts.Valid() {
		return
	}
	if t.count == 0 {
		t.first = pts
		t.firstIndex = index
	}
	t.last = pts
	t.lastIndex = index
	t.count++
}

func (t *ptsRateTracker) Bitrate() common.Bitrate {
	if t.count < 2 {
		return 0
	}
	span := common.DiffPTS(t.first, t.last)
	if !span.Valid() || span == 0 {
		return 0
	}
	packets := uint64(t.lastIndex - t.firstIndex)
	return common.Bitrate(packets * common.PacketSizeBits * common.TimeScale / uint64(span))
}

type PcrStatistics struct {
	Pid           uint16         `json:"pid"`
	NrPCRs        int            `json:"nrPCRs"`
	FirstPCR      string         `json:"firstPCR,omitempty"`
	LastPCR       string         `json:"lastPCR,omitempty"`
	Bitrate       common.Bitrate `json:"bitrate"`
	MinIntervalMs uint64         `json:"minIntervalMs,omitempty"`
	MaxIntervalMs uint64         `json:"maxIntervalMs,omitempty"`
	MaxJitter     uint64         `json:"maxJitter27MHz,omitempty"`
}

// Statistics summarizes the tracker with timestamps rendered in the
// given format.
func (t *PcrTracker) Statistics(f common.TimestampFormat) PcrStatistics {
	s := PcrStatistics{
		Pid:     t.pid,
		NrPCRs:  t.count,
		Bitrate: t.Bitrate(),
	}
	if t.count > 0 {
		s.FirstPCR = common.PCRToString(t.first, f)
		s.LastPCR = common.PCRToString(t.last, f)
	}
	if t.count > 1 {
		s.MinIntervalMs = uint64(t.minInterval) / (common.SystemClockFreq / 1000)
		s.MaxIntervalMs = uint64(t.maxInterval) / (common.SystemClockFreq / 1000)
		s.MaxJitter = uint64(t.maxJitter)
	}
	return s
}
