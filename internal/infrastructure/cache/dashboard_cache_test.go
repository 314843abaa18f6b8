package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *DashboardCache) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, NewDashboardCache(rdb, time.Minute)
}

func summary(total string) *dto.DashboardSummaryDTO {
	return &dto.DashboardSummaryDTO{
		Upcoming:           []dto.ObligationSummaryDTO{{ID: 1, Title: "IVA", DueDate: "2024-02-20", CompanyDisplayName: "Soda"}},
		Overdue:            []dto.ObligationSummaryDTO{},
		MonthEstimateTotal: decimal.RequireFromString(total),
		ReferenceDate:      "2024-02-15",
		MonthLabel:         "Febrero 2024",
	}
}

func TestDashboardCache_MissDevuelveNil(t *testing.T) {
	_, c := setupCache(t)
	got, ver, err := c.Get(context.Background(), "u1", calendar.Date(2024, 2, 15))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, ver)
}

func TestDashboardCache_SetGet(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()
	day := calendar.Date(2024, 2, 15)

	require.NoError(t, c.Set(ctx, "u1", day, 0, summary("150.25")))
	assert.True(t, mr.Exists("dashboard:u1:v0:2024-02-15"))

	got, _, err := c.Get(ctx, "u1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "150.25", got.MonthEstimateTotal.String())
	assert.Equal(t, "Soda", got.Upcoming[0].CompanyDisplayName)

	mr.FastForward(2 * time.Minute)
	got, _, err = c.Get(ctx, "u1", day)
	require.NoError(t, err)
	assert.Nil(t, got, "expira con el TTL")
}

func TestDashboardCache_InvalidateSoloDelUsuario(t *testing.T) {
	mr, c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", calendar.Date(2024, 2, 15), 0, summary("1")))
	require.NoError(t, c.Set(ctx, "u1", calendar.Date(2024, 2, 16), 0, summary("2")))
	require.NoError(t, c.Set(ctx, "u2", calendar.Date(2024, 2, 15), 0, summary("3")))

	require.NoError(t, c.Invalidate(ctx, "u1"))
	assert.False(t, mr.Exists("dashboard:u1:v0:2024-02-15"))
	assert.False(t, mr.Exists("dashboard:u1:v0:2024-02-16"))
	assert.True(t, mr.Exists("dashboard:u2:v0:2024-02-15"))

	got, ver, err := c.Get(ctx, "u1", calendar.Date(2024, 2, 15))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(1), ver)

	assert.NoError(t, c.Invalidate(ctx, "nadie"))
}

func TestDashboardCache_ErrorDeRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	c := NewDashboardCache(rdb, time.Minute)

	mr.Close()
	_, _, err = c.Get(context.Background(), "u1", calendar.Date(2024, 2, 15))
	assert.Error(t, err)
}

func TestDashboardCache_SetConVersionAnteriorNoSeSirve(t *testing.T) {
	_, c := setupCache(t)
	ctx := context.Background()
	day := calendar.Date(2024, 2, 15)

	// Lectura, luego una invalidación, luego el Set del resumen ya calculado.
	got, ver, err := c.Get(ctx, "u1", day)
	require.NoError(t, err)
	require.Nil(t, got)
	require.NoError(t, c.Invalidate(ctx, "u1"))
	require.NoError(t, c.Set(ctx, "u1", day, ver, summary("10")))

	got, cur, err := c.Get(ctx, "u1", day)
	require.NoError(t, err)
	assert.Nil(t, got, "el resumen previo a la invalidación no se sirve")
	assert.Equal(t, ver+1, cur)

	require.NoError(t, c.Set(ctx, "u1", day, cur, summary("11")))
	got, _, err = c.Get(ctx, "u1", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "11", got.MonthEstimateTotal.String())
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := NewClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = rdb.Close()

	down, err := miniredis.Run()
	require.NoError(t, err)
	addr := down.Addr()
	down.Close()
	_, err = NewClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
