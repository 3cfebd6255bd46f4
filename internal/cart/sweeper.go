package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type sessionGauge interface {
	SetActiveSessions(n int)
}

// Sweeper periodically discards idle session carts.
type Sweeper struct {
	sessions *Sessions
	interval time.Duration
	gauge    sessionGauge
	logg     *logger.Logger
	now      func() time.Time
}

// NewSweeper builds a sweeper over sessions. gauge and logg may be nil.
func NewSweeper(sessions *Sessions, interval time.Duration, gauge sessionGauge, logg *logger.Logger) (*Sweeper, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive")
	}
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		gauge:    gauge,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Run sweeps on every tick until ctx is canceled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) int {
	dropped := s.sessions.Sweep(s.now())
	active := s.sessions.Len()
	if s.gauge != nil {
		s.gauge.SetActiveSessions(active)
	}
	if dropped > 0 && s.logg != nil {
		s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
			"dropped": dropped,
			"active":  active,
		}), "sessions.swept")
	}
	return dropped
}
