package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"medialens/internal/platform/redis"
	"medialens/internal/screening/models"
)

// CachedExtractor is a read-through cache in front of another Extractor.
// Articles are immutable once published, so a cached extraction stays valid
// for the whole TTL. Cache failures are logged and fall through to the
// underlying extractor; the cache never fails an article.
type CachedExtractor struct {
	inner  Extractor
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ Extractor = (*CachedExtractor)(nil)

// NewCachedExtractor wraps inner with a redis cache. A nil client disables
// caching and returns inner unchanged.
func NewCachedExtractor(inner Extractor, client *redis.Client, ttl time.Duration, logger *slog.Logger) Extractor {
	if client == nil {
		return inner
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedExtractor{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedExtractor) Extract(ctx context.Context, profile models.UserProfile, hit models.MediaHit) (*Result, error) {
	key := cacheKey(profile, hit)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var result Result
		if err := json.Unmarshal(payload, &result); err == nil {
			return &result, nil
		}
		c.logger.Warn("discarding corrupt extraction cache entry", "key", key)
	case err != goredis.Nil:
		c.logger.Warn("extraction cache read failed", "key", key, "error", err)
	}

	result, extractErr := c.inner.Extract(ctx, profile, hit)
	if extractErr != nil {
		return nil, extractErr
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("extraction cache write failed", "key", key, "error", err)
		}
	}

	return result, nil
}

// cacheKey identifies one (subject, article) pair. The URL pins the article
// when present; title plus date covers feeds that omit URLs.
func cacheKey(profile models.UserProfile, hit models.MediaHit) string {
	h := sha256.New()
	h.Write([]byte(profile.FullName))
	h.Write([]byte{0})
	if hit.URL != "" {
		h.Write([]byte(hit.URL))
	} else {
		h.Write([]byte(hit.Title))
		h.Write([]byte{0})
		h.Write([]byte(hit.Date))
	}
	return "medialens:extraction:" + hex.EncodeToString(h.Sum(nil))
}
