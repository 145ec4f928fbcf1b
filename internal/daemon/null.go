package daemon

import (
	"context"
	"time"
)

// NullCache is a ResultCache that never stores anything. Useful when
// running the daemon without a Redis instance available.
type NullCache struct{}

// Get always reports a cache miss.
func (NullCache) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }

// Set does nothing.
func (NullCache) Set(ctx context.Context, key, value string, ttl time.Duration) error { return nil }

// NullAuditLog is an AuditLog that discards every record. Useful when
// running the daemon without a MongoDB instance available.
type NullAuditLog struct{}

// Record does nothing.
func (NullAuditLog) Record(ctx context.Context, rec RunRecord) error { return nil }

var (
	_ ResultCache = NullCache{}
	_ AuditLog    = NullAuditLog{}
)
