package pose

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often a new estimate is requested.
const DefaultInterval = 100 * time.Millisecond

// Sampler requests an estimate from its Source every interval without waiting for earlier
// requests to finish, and publishes completions into a Slot.
type Sampler struct {
	source   Source
	slot     *Slot
	interval time.Duration
	seq      atomic.Uint64
	inflight sync.WaitGroup

	// OnError, if set, is called from the request goroutine for failed estimates other than ErrNoPose.
	OnError func(err error)
}

// NewSampler returns a sampler publishing into slot. interval <= 0 uses DefaultInterval.
func NewSampler(source Source, slot *Slot, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{source: source, slot: slot, interval: interval}
}

// Slot returns the slot completions are published to.
func (s *Sampler) Slot() *Slot {
	return s.slot
}

// Run dispatches one request per interval until ctx is done.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.dispatch(ctx)
		}
	}
}

// dispatch starts one estimate in its own goroutine.
func (s *Sampler) dispatch(ctx context.Context) {
	seq := s.seq.Add(1)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		p, err := s.source.EstimateSinglePose(ctx)
		if err != nil {
			if s.OnError != nil && !errors.Is(err, ErrNoPose) && ctx.Err() == nil {
				s.OnError(err)
			}
			return
		}
		s.slot.Put(seq, p)
	}()
}

// Wait blocks until every dispatched request has completed.
func (s *Sampler) Wait() {
	s.inflight.Wait()
}
