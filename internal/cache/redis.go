package cache

import (
	"context"
	"fmt"
	"time"

	"comprobantes/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Cache key formats. The store fingerprint namespaces every key so processes
// serving different data never share entries.
const (
	PanelKeyFmt  = "comprobantes:%s:panel:%d"
	ExportKeyFmt = "comprobantes:%s:export:%s"
)

var (
	client *redis.Client
	ttl    = 5 * time.Minute
)

// Init initializes the Redis connection. On failure the cache stays disabled
// and every lookup misses.
func Init(addr, password string, expiry time.Duration) error {
	if addr == "" {
		return fmt.Errorf("redis address not configured")
	}
	if expiry > 0 {
		ttl = expiry
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return err
	}
	client = c
	return nil
}

// Close releases the connection, if any
func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// Enabled reports whether a Redis connection is available
func Enabled() bool {
	return client != nil
}

// Ping checks the connection; a disabled cache is not an error
func Ping(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// GetCachedPanel returns the rendered panel fragment for a row
func GetCachedPanel(ctx context.Context, fingerprint string, row int) ([]byte, bool) {
	return get(ctx, fmt.Sprintf(PanelKeyFmt, fingerprint, row))
}

// CachePanel stores a rendered panel fragment
func CachePanel(ctx context.Context, fingerprint string, row int, data []byte) {
	set(ctx, fmt.Sprintf(PanelKeyFmt, fingerprint, row), data)
}

// GetCachedExport returns a generated export file (format is "xlsx" or "pdf")
func GetCachedExport(ctx context.Context, fingerprint, format string) ([]byte, bool) {
	return get(ctx, fmt.Sprintf(ExportKeyFmt, fingerprint, format))
}

// CacheExport stores a generated export file
func CacheExport(ctx context.Context, fingerprint, format string, data []byte) {
	set(ctx, fmt.Sprintf(ExportKeyFmt, fingerprint, format), data)
}

func get(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return data, true
}

func set(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}
