package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/Comcast/gots/v2/packet"
	"github.com/garethfenn/tsduck/common"
	"github.com/stretchr/testify/require"
)

// pcrPacket builds an adaptation-field-only packet carrying a PCR.
func pcrPacket(pid uint16, pcr common.PCR) packet.Packet {
	var pkt packet.Packet
	for i := range pkt {
		pkt[i] = 0xFF
	}
	pkt[0] = 0x47
	pkt[1] = byte(pid>>8) & 0x1F
	pkt[2] = byte(pid)
	pkt[3] = 0x20 // adaptation field only
	pkt[4] = 183  // adaptation_field_length
	pkt[5] = 0x10 // PCR_flag

	base := uint64(pcr) / 300
	ext := uint64(pcr) % 300
	pkt[6] = byte(base >> 25)
	pkt[7] = byte(base >> 17)
	pkt[8] = byte(base >> 9)
	pkt[9] = byte(base >> 1)
	pkt[10] = byte((base&1)<<7) | 0x7E | byte((ext>>8)&1)
	pkt[11] = byte(ext)
	return pkt
}

// fillerPacket builds a payload-only packet without a payload start.
func fillerPacket(pid uint16, cc byte) packet.Packet {
	var pkt packet.Packet
	for i := range pkt {
		pkt[i] = 0xFF
	}
	pkt[0] = 0x47
	pkt[1] = byte(pid>>8) & 0x1F
	pkt[2] = byte(pid)
	pkt[3] = 0x10 | (cc & 0x0F)
	return pkt
}

// pesPacket builds a payload-start packet with a minimal PES header
// carrying only a PTS.
func pesPacket(pid uint16, pts common.PTS, cc byte) packet.Packet {
	var pkt packet.Packet
	for i := range pkt {
		pkt[i] = 0xFF
	}
	pkt[0] = 0x47
	pkt[1] = 0x40 | byte(pid>>8)&0x1F
	pkt[2] = byte(pid)
	pkt[3] = 0x10 | (cc & 0x0F)

	v := uint64(pts)
	pes := []byte{
		0x00, 0x00, 0x01, 0xE0, // start code, video stream id
		0x00, 0x00, // PES packet length unbounded
		0x80, 0x80, 0x05, // flags: PTS only, header length 5
		0x21 | byte((v>>29)&0x0E),
		byte(v >> 22),
		byte((v>>14)&0xFE) | 0x01,
		byte(v >> 7),
		byte((v<<1)&0xFE) | 0x01,
	}
	copy(pkt[4:], pes)
	return pkt
}

func TestReadPCR(t *testing.T) {
	want := common.PCR(0x1ABCDEFFF*300 + 0x12A)
	pkt := pcrPacket(256, want)
	got, ok := readPCR(&pkt)
	require.True(t, ok)
	require.Equal(t, want, got)

	filler := fillerPacket(256, 0)
	_, ok = readPCR(&filler)
	require.False(t, ok)
}

// writeStream lays out a PCR packet every tenth packet with filler in
// between, at a constant 5 Mbps (81216 ticks per 10 packets).
func writeStream(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	pcrs := []common.PCR{1000, 82216, 163432}
	cc := byte(0)
	for i, pcr := range pcrs {
		pkt := pcrPacket(256, pcr)
		_, err := buf.Write(pkt[:])
		require.NoError(t, err)
		if i == len(pcrs)-1 {
			break
		}
		for j := 0; j < 9; j++ {
			pkt = fillerPacket(257, cc)
			cc++
			_, err = buf.Write(pkt[:])
			require.NoError(t, err)
		}
	}
	return buf
}

func parseBitrateReport(t *testing.T, buf *bytes.Buffer, o Options) BitrateReport {
	t.Helper()
	out := bytes.Buffer{}
	err := ParseBitrate(context.TODO(), &out, buf, o)
	require.NoError(t, err)
	var report BitrateReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	return report
}

func TestParseBitrateFromPCR(t *testing.T) {
	report := parseBitrateReport(t, writeStream(t), Options{})

	require.Equal(t, uint64(21), report.TotalPackets)
	require.Equal(t, 2, report.NrPids)
	require.Equal(t, []uint16{256, 257}, report.Pids)
	require.Equal(t, common.Bitrate(5000000), report.Bitrate)
	require.Equal(t, "pcr-rate", report.Confidence)

	require.Len(t, report.PcrPids, 1)
	s := report.PcrPids[0]
	require.Equal(t, uint16(256), s.Pid)
	require.Equal(t, 3, s.NrPCRs)
	require.Equal(t, common.Bitrate(5000000), s.Bitrate)
}

func TestParseBitrateDeclaredOverride(t *testing.T) {
	report := parseBitrateReport(t, writeStream(t), Options{DeclaredBitrate: 6000000})

	require.Equal(t, common.Bitrate(6000000), report.Bitrate)
	require.Equal(t, "override", report.Confidence)
}

func TestParseBitrateFromPTS(t *testing.T) {
	// 1 Mbps: 100 packets * 1504 bits * 90kHz / 1e6 = 13536 ticks
	buf := &bytes.Buffer{}
	pkt := pesPacket(256, 1000, 0)
	_, err := buf.Write(pkt[:])
	require.NoError(t, err)
	for j := 0; j < 99; j++ {
		filler := fillerPacket(256, byte(j+1))
		_, err = buf.Write(filler[:])
		require.NoError(t, err)
	}
	pkt = pesPacket(256, 14536, 4)
	_, err = buf.Write(pkt[:])
	require.NoError(t, err)

	report := parseBitrateReport(t, buf, Options{})
	require.Equal(t, uint64(101), report.TotalPackets)
	require.Equal(t, common.Bitrate(1000000), report.Bitrate)
	require.Equal(t, "pts-rate", report.Confidence)
	require.Empty(t, report.PcrPids)
}
