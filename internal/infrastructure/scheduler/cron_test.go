package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExpresionInvalida(t *testing.T) {
	_, err := New([]string{"0 8 * * *", "cada día"}, time.UTC, func(context.Context, time.Time) {}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cada día")
}

func TestNextRuns_EnZonaConfigurada(t *testing.T) {
	loc, err := time.LoadLocation("America/Costa_Rica")
	require.NoError(t, err)
	s, err := New([]string{"0 8 * * *", "0 16 * * *"}, loc, func(context.Context, time.Time) {}, zerolog.Nop())
	require.NoError(t, err)

	// 12:00 UTC = 06:00 en Costa Rica
	after := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := s.NextRuns(after)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Equal(time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)))
	assert.True(t, runs[1].Equal(time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)))

	// El mismo instante expresado en otra zona da las mismas ejecuciones.
	tokyo := after.In(time.FixedZone("JST", 9*3600))
	again := s.NextRuns(tokyo)
	require.Len(t, again, 2)
	assert.True(t, again[0].Equal(runs[0]))
	assert.True(t, again[1].Equal(runs[1]))
	assert.Equal(t, loc, again[0].Location())
}

func TestStartStop_EjecutaYEsperaAlTrabajo(t *testing.T) {
	var runs atomic.Int32
	var finished atomic.Bool
	s, err := New([]string{"@every 1s"}, time.UTC, func(ctx context.Context, now time.Time) {
		runs.Add(1)
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	}, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.True(t, finished.Load())
}

func TestStop_VenceElContexto(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	s, err := New([]string{"@every 1s"}, time.UTC, func(ctx context.Context, now time.Time) {
		once.Do(func() { close(started) })
		<-ctx.Done()
	}, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("el trabajo no arrancó")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)
}
