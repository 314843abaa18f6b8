// Package cache guarda en Redis el resumen del dashboard por usuario y día.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/tramitefacil-api/internal/application/dto"
	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/domain/calendar"
)

var _ ports.DashboardCache = (*DashboardCache)(nil)

const (
	keyPrefix = "dashboard:"
	verPrefix = "dashboard:ver:"
)

// DashboardCache implementa ports.DashboardCache sobre Redis.
// Entradas: dashboard:{user_id}:v{version}:{YYYY-MM-DD}. Versión: dashboard:ver:{user_id}, sin TTL.
type DashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDashboardCache construye la caché con el TTL indicado.
func NewDashboardCache(rdb *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{rdb: rdb, ttl: ttl}
}

func key(ownerID string, version int64, day time.Time) string {
	return keyPrefix + ownerID + ":v" + strconv.FormatInt(version, 10) + ":" + calendar.Format(day)
}

// version lee la versión vigente del usuario; 0 si nunca se invalidó.
func (c *DashboardCache) version(ctx context.Context, ownerID string) (int64, error) {
	v, err := c.rdb.Get(ctx, verPrefix+ownerID).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version: %w", err)
	}
	return v, nil
}

// Get devuelve el resumen guardado para la versión vigente, o nil si no hay.
func (c *DashboardCache) Get(ctx context.Context, ownerID string, day time.Time) (*dto.DashboardSummaryDTO, int64, error) {
	ver, err := c.version(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	b, err := c.rdb.Get(ctx, key(ownerID, ver, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ver, nil
	}
	if err != nil {
		return nil, ver, fmt.Errorf("redis get: %w", err)
	}
	var s dto.DashboardSummaryDTO
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, ver, fmt.Errorf("decode dashboard: %w", err)
	}
	return &s, ver, nil
}

// Set guarda el resumen bajo version con el TTL configurado.
func (c *DashboardCache) Set(ctx context.Context, ownerID string, day time.Time, version int64, s *dto.DashboardSummaryDTO) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode dashboard: %w", err)
	}
	return c.rdb.Set(ctx, key(ownerID, version, day), b, c.ttl).Err()
}

// Invalidate avanza la versión del usuario y borra sus entradas. Un Set en vuelo con la
// versión anterior escribe una clave que ya nadie lee y que expira con el TTL.
func (c *DashboardCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := c.rdb.Incr(ctx, verPrefix+ownerID).Err(); err != nil {
		return fmt.Errorf("redis incr version: %w", err)
	}

	iter := c.rdb.Scan(ctx, 0, keyPrefix+ownerID+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
