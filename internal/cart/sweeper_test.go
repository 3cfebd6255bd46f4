package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gaugeStub struct {
	values []int
}

func (g *gaugeStub) SetActiveSessions(n int) { g.values = append(g.values, n) }

func TestNewSweeperValidates(t *testing.T) {
	_, err := NewSweeper(nil, time.Minute, nil, nil)
	require.Error(t, err)

	_, err = NewSweeper(NewSessions(time.Hour), 0, nil, nil)
	require.Error(t, err)
}

func TestSweepOnceDropsIdleSessions(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(time.Hour)
	sessions.now = func() time.Time { return base }
	sessions.Get("idle")
	sessions.now = func() time.Time { return base.Add(50 * time.Minute) }
	sessions.Get("recent")

	gauge := &gaugeStub{}
	sweeper, err := NewSweeper(sessions, time.Minute, gauge, nil)
	require.NoError(t, err)
	sweeper.now = func() time.Time { return base.Add(90 * time.Minute) }

	assert.Equal(t, 1, sweeper.sweepOnce(context.Background()))
	assert.Equal(t, 1, sessions.Len())
	_, ok := sessions.Lookup("recent")
	assert.True(t, ok)
	assert.Equal(t, []int{1}, gauge.values)
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	sweeper, err := NewSweeper(NewSessions(time.Hour), time.Millisecond, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
