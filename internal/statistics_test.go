package internal

import (
	"testing"

	"github.com/garethfenn/tsduck/common"
	"github.com/stretchr/testify/require"
)

func TestCalculateSteps(t *testing.T) {
	testCases := []struct {
		name       string
		timestamps []int64
		want       []int64
	}{
		{
			name:       "too few timestamps",
			timestamps: []int64{1},
			want:       nil,
		},
		{
			name:       "monotonically increasing",
			timestamps: []int64{3000, 6000, 9000, 12000},
			want:       []int64{3000, 3000, 3000},
		},
		{
			name:       "wrap around",
			timestamps: []int64{common.PtsWrap - 4, common.PtsWrap - 2, 1, 3},
			want:       []int64{2, 3, 2},
		},
		{
			name:       "backwards step",
			timestamps: []int64{6000, 3000},
			want:       []int64{-3000},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CalculateSteps(tc.timestamps))
		})
	}
}

func TestCalculateFrameRate(t *testing.T) {
	s := StreamStatistics{TimeStamps: []int64{0, 3600, 7200, 10800}}
	s.calculateFrameRate(common.TimeScale)
	require.Empty(t, s.Errors)
	require.Equal(t, 25.0, s.FrameRate)

	irregular := StreamStatistics{TimeStamps: []int64{0, 3600, 10800}}
	irregular.calculateFrameRate(common.TimeScale)
	require.Contains(t, irregular.Errors, "irregular PTS/DTS steps")
}

func TestPcrTrackerConstantRate(t *testing.T) {
	// 5 Mbps: 10 packets * 1504 bits * 27MHz / 5e6 = 81216 ticks
	tr := NewPcrTracker(256)
	tr.Add(0, 1000)
	tr.Add(10, 82216)
	tr.Add(20, 163432)

	require.Equal(t, common.Bitrate(5000000), tr.Bitrate())

	s := tr.Statistics(common.TimestampFormat{Decimal: true})
	require.Equal(t, uint16(256), s.Pid)
	require.Equal(t, 3, s.NrPCRs)
	require.Equal(t, common.Bitrate(5000000), s.Bitrate)
	require.Equal(t, "1,000", s.FirstPCR)
	require.Equal(t, "163,432", s.LastPCR)
	require.Equal(t, uint64(3), s.MinIntervalMs)
	require.Equal(t, uint64(3), s.MaxIntervalMs)
	// perfectly constant rate shows no jitter
	require.Equal(t, uint64(0), s.MaxJitter)
}

func TestPcrTrackerAcrossWrap(t *testing.T) {
	tr := NewPcrTracker(256)
	tr.Add(0, common.PcrWrap-40608)
	tr.Add(10, 40608)
	require.Equal(t, common.Bitrate(5000000), tr.Bitrate())
}

func TestPcrTrackerIgnoresInvalid(t *testing.T) {
	tr := NewPcrTracker(256)
	tr.Add(0, common.InvalidPcr)
	tr.Add(1, common.MaxPcr+1)
	require.Equal(t, common.Bitrate(0), tr.Bitrate())
	require.Equal(t, 0, tr.Statistics(common.TimestampFormat{}).NrPCRs)
}

func TestPtsRateTracker(t *testing.T) {
	// 1 Mbps: 100 packets * 1504 bits * 90kHz / 1e6 = 13536 ticks
	var tr ptsRateTracker
	require.Equal(t, common.Bitrate(0), tr.Bitrate())
	tr.Add(0, 1000)
	require.Equal(t, common.Bitrate(0), tr.Bitrate())
	tr.Add(100, 14536)
	require.Equal(t, common.Bitrate(1000000), tr.Bitrate())
}
