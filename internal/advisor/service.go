package advisor

import (
	"context"
	"time"

	"finmo/internal/cache"
	"finmo/internal/core"
	"finmo/internal/log"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultCacheTTL = 10 * time.Minute
	cacheSize       = 32
)

// Service wraps a Client so callers always get advice to display.
type Service struct {
	client Client
	logger *log.Logger
	group  singleflight.Group
	cache  *cache.LRUCache[core.AIAdvice]
}

// NewService wraps client. A nil client makes every call return the fallback.
func NewService(client Client, ttl time.Duration, logger *log.Logger, opts ...cache.Option) *Service {
	if logger == nil {
		logger = log.Discard()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		client: client,
		logger: logger.WithComponent(log.ComponentAdvisor),
		cache:  cache.NewLRUCache[core.AIAdvice](cacheSize, ttl, opts...),
	}
}

// Cache exposes the advice cache for periodic cleanup.
func (s *Service) Cache() *cache.LRUCache[core.AIAdvice] {
	return s.cache
}

// Advise returns the model's advice or the fallback. It never fails.
func (s *Service) Advise(ctx context.Context, req Request) core.AIAdvice {
	if s.client == nil {
		return Fallback()
	}

	key := req.Fingerprint()
	if advice, ok := s.cache.Get(key); ok {
		s.logger.DebugContext(ctx, "Advice served from cache")
		return advice
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		advice, err := s.client.Advise(ctx, req)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, advice)
		return advice, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Advice unavailable, using fallback",
			log.FieldOperation, log.OpAdvise,
			log.FieldErrorKind, string(KindOf(err)),
			log.FieldError, err)
		return Fallback()
	}

	advice := v.(core.AIAdvice)
	s.logger.InfoContext(ctx, "Advice ready",
		log.FieldAdviceStatus, string(advice.Status),
		"shared", shared)
	return advice
}
