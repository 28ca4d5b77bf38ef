// Package cache memoizes evaluated reports in Redis. Reports are a pure
// function of the snapshot, so the snapshot fingerprint is the whole key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/gcare-service/internal/models"
)

// ReportCache stores reports keyed by snapshot fingerprint
type ReportCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *logrus.Logger
}

// NewReportCache initializes a new report cache
func NewReportCache(client redis.UniversalClient, ttl time.Duration, log *logrus.Logger) *ReportCache {
	return &ReportCache{
		client: client,
		prefix: "gcare:report:",
		ttl:    ttl,
		log:    log,
	}
}

// Fingerprint hashes the canonical JSON encoding of a snapshot
func Fingerprint(s models.Snapshot) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload)), nil
}

// Get returns the cached report, or nil on a miss
func (c *ReportCache) Get(ctx context.Context, fingerprint string) (*models.Report, error) {
	data, err := c.client.Get(ctx, c.prefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	c.log.Debugf("Report cache hit: %s", fingerprint)
	return &report, nil
}

// Set stores a report under its snapshot fingerprint
func (c *ReportCache) Set(ctx context.Context, fingerprint string, report *models.Report) error {
	if report == nil {
		return nil
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+fingerprint, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}
