package room

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openroom/chat-api/internal/metrics"
)

// Sweeper evicts participants whose last heartbeat is older than staleAfter,
// appending a departure notice to the message log for each eviction. It runs
// for the lifetime of the serving process; cancelling the context passed to
// Run is the only stop signal.
type Sweeper struct {
	participants ParticipantStore
	messages     MessageStore
	interval     time.Duration
	staleAfter   time.Duration
	log          *logrus.Entry

	// Now supplies the current time; tests substitute a fixed clock.
	Now func() time.Time
}

// NewSweeper creates a sweeper that ticks every interval and evicts
// participants inactive for staleAfter or longer.
func NewSweeper(participants ParticipantStore, messages MessageStore, interval, staleAfter time.Duration) *Sweeper {
	return &Sweeper{
		participants: participants,
		messages:     messages,
		interval:     interval,
		staleAfter:   staleAfter,
		log:          logrus.WithField("component", "sweeper"),
		Now:          time.Now,
	}
}

// Run blocks, sweeping once per interval until ctx is cancelled. Each tick
// recomputes staleness from the store; nothing carries over between ticks.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.WithFields(logrus.Fields{
		"interval":    s.interval,
		"stale_after": s.staleAfter,
	}).Info("sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one pass. Each eviction is an independent unit of work: a
// failure on one participant is logged and the rest of the pass continues.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.Now()

	all, err := s.participants.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("sweep: listing participants failed")
		return
	}

	cutoff := now.UnixMilli() - s.staleAfter.Milliseconds()
	for _, p := range all {
		if p.LastStatus > cutoff {
			continue
		}
		s.evict(ctx, p, now)
	}
}

// evict appends the departure notice, then removes the participant.
func (s *Sweeper) evict(ctx context.Context, p Participant, now time.Time) {
	notice := Message{
		From: p.Name,
		To:   BroadcastTo,
		Text: departureText,
		Type: TypeStatus,
		Time: now.Format(timeLayout),
	}
	if _, err := s.messages.Insert(ctx, notice); err != nil {
		s.log.WithError(err).WithField("name", p.Name).Warn("sweep: departure notice failed")
		return
	}
	if err := s.participants.DeleteByName(ctx, p.Name); err != nil {
		s.log.WithError(err).WithField("name", p.Name).Warn("sweep: eviction failed")
		return
	}

	metrics.MessagesTotal.WithLabelValues(TypeStatus).Inc()
	metrics.EvictionsTotal.Inc()
	s.log.WithField("name", p.Name).Info("participant evicted")
}
