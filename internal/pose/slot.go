package pose

import "sync"

// Slot holds the newest completed estimate. Each estimate carries the sequence number of the
// request that produced it; a completion older than the stored one is dropped, so a slow request
// can never overwrite a newer result.
type Slot struct {
	mu      sync.Mutex
	seq     uint64
	pose    Pose
	has     bool
	unread  bool
	dropped uint64
}

// Put stores p from request seq. It reports false when p was superseded and dropped.
func (s *Slot) Put(seq uint64, p Pose) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has && seq <= s.seq {
		s.dropped++
		return false
	}
	s.seq, s.pose, s.has, s.unread = seq, p, true, true
	return true
}

// Take returns the newest estimate if it has not been taken yet.
func (s *Slot) Take() (Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.unread {
		return Pose{}, false
	}
	s.unread = false
	return s.pose, true
}

// Peek returns the newest estimate regardless of whether it was taken (used for drawing).
func (s *Slot) Peek() (Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose, s.has
}

// Dropped returns how many stale completions were discarded.
func (s *Slot) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
