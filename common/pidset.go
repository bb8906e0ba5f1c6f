package common

import "math/bits"

// NrPids is the size of the 13-bit PID space.
const NrPids = 8192

// PIDSet is a bit-per-PID membership set over the full PID space.
// The zero value is the empty set.
type PIDSet [NrPids / 64]uint64

func (s *PIDSet) Set(pid uint16) {
	if pid < NrPids {
		s[pid/64] |= 1 << (pid % 64)
	}
}

func (s *PIDSet) Clear(pid uint16) {
	if pid < NrPids {
		s[pid/64] &^= 1 << (pid % 64)
	}
}

func (s *PIDSet) Has(pid uint16) bool {
	return pid < NrPids && s[pid/64]&(1<<(pid%64)) != 0
}

// Count returns the number of PIDs in the set.
func (s *PIDSet) Count() int {
	count := 0
	for _, word := range s {
		count += bits.OnesCount64(word)
	}
	return count
}

// Pids returns the members of the set in ascending order.
func (s *PIDSet) Pids() []uint16 {
	pids := make([]uint16, 0, s.Count())
	for pid := uint16(0); pid < NrPids; pid++ {
		if s.Has(pid) {
			pids = append(pids, pid)
		}
	}
	return pids
}
