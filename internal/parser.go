package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/Comcast/gots/v2"
	"github.com/Comcast/gots/v2/packet"
	"github.com/Comcast/gots/v2/pes"
	"github.com/Comcast/gots/v2/psi"
	"github.com/Comcast/gots/v2/scte35"
	"github.com/asticode/go-astits"
	slices "golang.org/x/exp/slices"

	"github.com/garethfenn/tsduck/common"
)

type TimestampInfo struct {
	Pid   uint16 `json:"pid"`
	Codec string `json:"codec,omitempty"`
	PTS   string `json:"pts"`
	DTS   string `json:"dts,omitempty"`
}

type BitrateReport struct {
	TotalPackets uint64          `json:"totalPackets"`
	NrPids       int             `json:"nrPids"`
	Pids         []uint16        `json:"pids"`
	Bitrate      common.Bitrate  `json:"bitrate"`
	Confidence   string          `json:"bitrateConfidence"`
	PcrPids      []PcrStatistics `json:"pcrPids,omitempty"`
}

// ParseTimestamps demuxes the stream and reports PES timestamps and
// per-PID timing statistics.
func ParseTimestamps(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	rd := bufio.NewReaderSize(f, 1000*common.PacketSize)
	dmx := astits.NewDemuxer(ctx, rd)
	pmtPID := -1
	nrSamples := 0
	sdtPrinted := false
	esKinds := make(map[uint16]string)
	pidsToShow := ParsePidsFromString(o.PidsToShow)
	jp := &JsonPrinter{W: w, Indent: o.Indent}
	format := o.TimestampFormat()
	statistics := make(map[uint16]*StreamStatistics)
dataLoop:
	for {
		// Check if context was cancelled
		select {
		case <-ctx.Done():
			break dataLoop
		default:
		}

		d, err := dmx.NextData()
		if err != nil {
			if err.Error() == "astits: no more packets" {
				break dataLoop
			}
			return fmt.Errorf("reading next data %w", err)
		}

		// Print service information
		if d.SDT != nil && !sdtPrinted {
			jp.PrintSdtInfo(d.SDT, o.ShowService)
			sdtPrinted = true
		}

		// Print PID information
		if pmtPID < 0 && d.PMT != nil {
			for _, es := range d.PMT.ElementaryStreams {
				streamInfo := ParseAstitsElementaryStreamInfo(es)
				if streamInfo != nil {
					esKinds[es.ElementaryPID] = streamInfo.Codec
					jp.Print(streamInfo, o.ShowStreamInfo)
				}
			}
			pmtPID = int(d.PID)
		}
		if pmtPID == -1 {
			continue
		}
		pesData := d.PES
		if pesData == nil || pesData.Header == nil || pesData.Header.OptionalHeader == nil {
			continue
		}
		if pesData.Header.OptionalHeader.PTS == nil {
			continue
		}
		if len(pidsToShow) > 0 && !slices.Contains(pidsToShow, int(d.PID)) {
			continue
		}

		ptsBase := pesData.Header.OptionalHeader.PTS.Base
		info := TimestampInfo{
			Pid:   d.PID,
			Codec: esKinds[d.PID],
			PTS:   common.PTSToString(common.PTS(ptsBase), format),
		}
		stat := statistics[d.PID]
		if stat == nil {
			stat = &StreamStatistics{Type: esKinds[d.PID], Pid: d.PID}
			statistics[d.PID] = stat
		}
		// Prefer DTS steps when present, since PTS may be reordered
		sample := ptsBase
		if dts := pesData.Header.OptionalHeader.DTS; dts != nil {
			info.DTS = common.PTSToString(common.PTS(dts.Base), format)
			sample = dts.Base
		}
		stat.TimeStamps = append(stat.TimeStamps, sample)
		jp.Print(info, o.ShowTimestamps)

		nrSamples++
		if o.MaxNrSamples > 0 && nrSamples >= o.MaxNrSamples {
			break dataLoop
		}
	}

	for _, s := range statistics {
		jp.PrintStatistics(*s, format, o.ShowStatistics)
	}

	return jp.Error()
}

// ParseBitrate reads raw packets and derives bitrate, PCR interval and
// jitter figures, reconciling the PCR-based rate with a PTS-based one and
// an optional user-declared rate.
func ParseBitrate(ctx context.Context, w io.Writer, f io.Reader, o Options) error {
	reader := bufio.NewReader(f)
	if _, err := packet.Sync(reader); err != nil {
		return fmt.Errorf("syncing with reader %w", err)
	}

	jp := &JsonPrinter{W: w, Indent: o.Indent}
	format := o.TimestampFormat()

	var seen common.PIDSet
	var pat psi.PAT
	pmtAccs := make(map[int]packet.Accumulator)
	scte35PIDs := make(map[int]bool)
	trackers := make(map[uint16]*PcrTracker)
	var ptsRate ptsRateTracker
	var index common.PacketCounter
	var pkt packet.Packet

packetLoop:
	for {
		// Check if context was cancelled
		select {
		case <-ctx.Done():
			break packetLoop
		default:
		}

		if _, err := io.ReadFull(reader, pkt[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break packetLoop
			}
			return fmt.Errorf("reading packet %w", err)
		}

		pid := uint16(packet.Pid(&pkt))
		seen.Set(pid)

		// Parse the first PAT and set up PMT accumulation per program
		if pat == nil && packet.IsPat(&pkt) {
			parsed, err := ParsePacketToPAT(&pkt)
			if err != nil {
				return err
			}
			pat = parsed
			for _, pmtPid := range pat.ProgramMap() {
				pmtAccs[pmtPid] = packet.NewAccumulator(psi.PmtAccumulatorDoneFunc)
			}
		}
		if acc, ok := pmtAccs[int(pid)]; ok {
			_, err := acc.WritePacket(&pkt)
			if err == gots.ErrAccumulatorDone {
				pmt, err := psi.NewPMT(acc.Bytes())
				if err != nil {
					return fmt.Errorf("parsing PMT %w", err)
				}
				delete(pmtAccs, int(pid))
				for _, es := range pmt.ElementaryStreams() {
					streamInfo := ParseElementaryStreamInfo(es)
					if streamInfo != nil {
						if streamInfo.Codec == "SCTE35" {
							scte35PIDs[es.ElementaryPid()] = true
						}
						jp.Print(streamInfo, o.ShowStreamInfo)
					}
				}
			} else if err != nil {
				return fmt.Errorf("accumulating PMT %w", err)
			}
			index++
			continue
		}

		if pcr, ok := readPCR(&pkt); ok {
			tr := trackers[pid]
			if tr == nil {
				tr = NewPcrTracker(pid)
				trackers[pid] = tr
			}
			tr.Add(index, pcr)
		}

		if pid != 0 && pkt.PayloadUnitStartIndicator() {
			if scte35PIDs[int(pid)] {
				pay, err := packet.Payload(&pkt)
				if err != nil {
					return fmt.Errorf("cannot get payload for packet on PID %d Error=%s", pid, err)
				}
				msg, err := scte35.NewSCTE35(pay)
				if err != nil {
					return fmt.Errorf("cannot parse SCTE35 Error=%v", err)
				}
				jp.Print(toSCTE35(pid, msg, format), o.ShowSCTE35)
			} else if pay, err := packet.Payload(&pkt); err == nil {
				// Any PES start with a PTS feeds the PTS-based estimate
				if h, err := pes.NewPESHeader(pay); err == nil && h.HasPTS() {
					ptsRate.Add(index, common.PTS(h.PTS()))
				}
			}
		}

		index++
	}

	pcrStats := make([]PcrStatistics, 0, len(trackers))
	var best *PcrTracker
	for _, pid := range seen.Pids() {
		tr := trackers[pid]
		if tr == nil {
			continue
		}
		pcrStats = append(pcrStats, tr.Statistics(format))
		if best == nil || tr.count > best.count {
			best = tr
		}
	}

	var pcrBitrate common.Bitrate
	if best != nil {
		pcrBitrate = best.Bitrate()
	}
	bitrate := common.SelectBitrate(pcrBitrate, common.BitrateConfidencePcrRate,
		ptsRate.Bitrate(), common.BitrateConfidencePtsRate)
	confidence := common.BitrateConfidencePcrRate
	if pcrBitrate == 0 {
		confidence = common.BitrateConfidencePtsRate
	}
	if bitrate == 0 {
		confidence = common.BitrateConfidenceLow
	}
	bitrate = common.SelectBitrate(bitrate, confidence,
		common.Bitrate(o.DeclaredBitrate), common.BitrateConfidenceOverride)
	if o.DeclaredBitrate != 0 {
		confidence = common.BitrateConfidenceOverride
	}

	report := BitrateReport{
		TotalPackets: uint64(index),
		NrPids:       seen.Count(),
		Pids:         seen.Pids(),
		Bitrate:      bitrate,
		Confidence:   confidence.String(),
		PcrPids:      pcrStats,
	}
	jp.Print(report, true)

	return jp.Error()
}

// readPCR extracts the 27MHz PCR from the adaptation field of a raw
// packet, if one is signalled.
func readPCR(pkt *packet.Packet) (common.PCR, bool) {
	if pkt[3]&0x20 == 0 || pkt[4] < 7 || pkt[5]&0x10 == 0 {
		return common.InvalidPcr, false
	}
	base := uint64(pkt[6])<<25 | uint64(pkt[7])<<17 | uint64(pkt[8])<<9 |
		uint64(pkt[9])<<1 | uint64(pkt[10])>>7
	ext := uint64(pkt[10]&0x01)<<8 | uint64(pkt[11])
	return common.PCR(base*300 + ext), true
}
