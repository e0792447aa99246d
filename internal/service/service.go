// Package service implements the news fetch-deduplicate-cache pipeline
// and the Gemini-backed summarize and chat operations.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/itchuru/news-service/internal/cache"
	"github.com/itchuru/news-service/pkg/models"
)

// Provider names, also the suffix of the cache key.
const (
	ProviderNaver  = "naver"
	ProviderGoogle = "google"

	cacheKeyPrefix = "latest_news_"
)

var (
	// ErrEmptyMessage rejects chat requests with no message.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrLLMUnavailable is returned when the Gemini client has no API key.
	ErrLLMUnavailable = errors.New("generative backend not configured")
	// ErrUnknownProvider is returned for provider names outside the two fixed sources.
	ErrUnknownProvider = errors.New("unknown news provider")
)

// Fetcher is one news provider.
type Fetcher interface {
	Fetch(ctx context.Context) (models.NewsBatch, error)
}

// Generator is the generative text backend.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
	Configured() bool
}

// Service wires the cache store, the two provider fetchers and the
// generative backend. All handles are read-only after construction.
type Service struct {
	store  cache.Store
	naver  Fetcher
	google Fetcher
	gen    Generator
	ttl    time.Duration
	log    *zap.Logger

	now func() time.Time
}

func New(store cache.Store, naver, google Fetcher, gen Generator, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		naver:  naver,
		google: google,
		gen:    gen,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

// NewsOverview is the result of fetching both providers; each side
// carries its own error so one failing source does not hide the other.
type NewsOverview struct {
	Korean    models.NewsBatch
	Global    models.NewsBatch
	KoreanErr error
	GlobalErr error
}

// News returns the batch for one provider through the read-through
// cache. A present, unexpired, readable record is served as-is; anything
// else (miss, expiry, store error, poisoned payload) falls through to a
// fresh fetch. Fetch errors are returned without writing the cache.
func (s *Service) News(ctx context.Context, provider string) (models.NewsBatch, error) {
	key := cacheKeyPrefix + provider
	now := s.now().Unix()

	rec, err := s.store.Get(ctx, key)
	switch {
	case err == nil && rec.ExpiresAt > now:
		var batch models.NewsBatch
		if jerr := json.Unmarshal([]byte(rec.Data), &batch); jerr == nil {
			s.log.Debug("cache hit", zap.String("key", key), zap.Int64("expires_at", rec.ExpiresAt))
			return batch, nil
		}
		s.log.Warn("discarding unreadable cache record", zap.String("key", key))
	case err != nil && !errors.Is(err, cache.ErrNotFound):
		// Cache trouble is never fatal; fall through to the fetch.
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	return s.fetchAndCache(ctx, provider, key)
}

func (s *Service) fetchAndCache(ctx context.Context, provider, key string) (models.NewsBatch, error) {
	fetcher, err := s.fetcher(provider)
	if err != nil {
		return nil, err
	}

	s.log.Info("fetching fresh news", zap.String("provider", provider))
	batch, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(batch)
	if err != nil {
		// Should not happen for plain structs; serve the batch anyway.
		s.log.Error("encode batch for cache", zap.String("key", key), zap.Error(err))
		return batch, nil
	}

	rec := &models.CacheRecord{
		Key:       key,
		Data:      string(data),
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}
	if err := s.store.Put(ctx, rec); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return batch, nil
}

func (s *Service) fetcher(provider string) (Fetcher, error) {
	switch provider {
	case ProviderNaver:
		return s.naver, nil
	case ProviderGoogle:
		return s.google, nil
	default:
		return nil, ErrUnknownProvider
	}
}

// AllNews fetches both providers sequentially, naver first.
func (s *Service) AllNews(ctx context.Context) NewsOverview {
	var ov NewsOverview
	ov.Korean, ov.KoreanErr = s.News(ctx, ProviderNaver)
	ov.Global, ov.GlobalErr = s.News(ctx, ProviderGoogle)
	return ov
}

// RefreshAll force-fetches both providers and overwrites their cache
// records regardless of remaining TTL. Used by the scheduled refresher.
func (s *Service) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, provider := range []string{ProviderNaver, ProviderGoogle} {
		key := cacheKeyPrefix + provider
		if _, err := s.fetchAndCache(ctx, provider, key); err != nil {
			s.log.Error("cache refresh failed", zap.String("provider", provider), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		s.log.Info("cache refreshed", zap.String("provider", provider))
	}
	return errors.Join(errs...)
}

// Summarize returns a persona-voiced analysis of the provider's current
// batch. An empty batch short-circuits with a fixed message and no
// backend call; a failed backend call collapses into a fixed fallback.
func (s *Service) Summarize(ctx context.Context, provider string) (string, error) {
	batch, err := s.News(ctx, provider)
	if err != nil {
		return "", err
	}

	if len(batch) == 0 {
		if provider == ProviderGoogle {
			return emptyGoogleSummary, nil
		}
		return emptyNaverSummary, nil
	}

	if !s.gen.Configured() {
		return "", ErrLLMUnavailable
	}

	summary, err := s.gen.Generate(ctx, buildSummaryPrompt(provider, batch), summaryTemperature)
	if err != nil {
		s.log.Error("gemini summarize failed", zap.String("provider", provider), zap.Error(err))
		if provider == ProviderGoogle {
			return googleSummaryFallback, nil
		}
		return naverSummaryFallback, nil
	}
	return summary, nil
}

// Chat forwards the user message through the chat persona prompt.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !s.gen.Configured() {
		return "", ErrLLMUnavailable
	}

	reply, err := s.gen.Generate(ctx, buildChatPrompt(message), chatTemperature)
	if err != nil {
		s.log.Error("gemini chat failed", zap.Error(err))
		return chatFallback, nil
	}
	return reply, nil
}
