// README: Weather service: Redis-cached snapshots and the polling task.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "weather:"

	// defaultInterval is used when the configured poll interval is missing
	// or non-positive; a zero interval would panic the ticker.
	defaultInterval = 30 * time.Minute
)

// Config is injected at construction; the poller has no environment coupling
// and only runs when the owning process starts it.
type Config struct {
	Destinations []string
	Interval     time.Duration
	CacheTTL     time.Duration
}

type Service struct {
	redis  *redis.Client
	client ForecastClient
	cfg    Config
	log    *zap.Logger
}

func NewService(redisClient *redis.Client, client ForecastClient, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{redis: redisClient, client: client, cfg: cfg, log: log}
}

func cacheKey(destination string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(destination))
}

// Get returns the cached snapshot for a destination, or ErrNoSnapshot.
func (s *Service) Get(ctx context.Context, destination string) (*Snapshot, error) {
	raw, err := s.redis.Get(ctx, cacheKey(destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// RunPoller refreshes the configured destinations until ctx is cancelled.
// It runs one round immediately, then once per interval.
func (s *Service) RunPoller(ctx context.Context) {
	if s.client == nil || len(s.cfg.Destinations) == 0 {
		return
	}

	s.refreshAll(ctx)

	interval := s.cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

// refreshAll updates every destination; one failing destination never blocks
// the others.
func (s *Service) refreshAll(ctx context.Context) {
	for _, dest := range s.cfg.Destinations {
		snap, err := s.client.Fetch(ctx, dest)
		if err != nil {
			s.log.Warn("weather refresh failed", zap.String("destination", dest), zap.Error(err))
			continue
		}
		if err := s.store(ctx, snap); err != nil {
			s.log.Warn("weather cache write failed", zap.String("destination", dest), zap.Error(err))
		}
	}
}

func (s *Service) store(ctx context.Context, snap *Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cacheKey(snap.Destination), raw, s.cfg.CacheTTL).Err()
}
