package studentvue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const (
	versionCacheKey     = "svue:akey"
	defaultVersionTTL   = time.Hour
	versionFetchTimeout = 15 * time.Second
	maxVersionBytes     = 1 << 10
)

// VersionKeys supplies the edupointkeyversion value. A configured
// VERSION_NUMBER always wins; otherwise the key is fetched from a remote
// endpoint and memoised (in process and, when available, in the shared cache).
type VersionKeys struct {
	static string
	url    string
	http   *http.Client
	cache  ports.ResponseCache
	ttl    time.Duration
	log    zerolog.Logger

	group     singleflight.Group
	mu        sync.RWMutex
	cached    string
	fetchedAt time.Time
	now       func() time.Time
}

var _ ports.VersionKeyProvider = (*VersionKeys)(nil)

// VersionKeysConfig configures NewVersionKeys. Cache may be nil.
type VersionKeysConfig struct {
	Static     string
	URL        string
	TTL        time.Duration
	HTTPClient *http.Client
	Cache      ports.ResponseCache
}

func NewVersionKeys(cfg VersionKeysConfig, log zerolog.Logger) *VersionKeys {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultVersionTTL
	}
	return &VersionKeys{
		static: strings.TrimSpace(cfg.Static),
		url:    cfg.URL,
		http:   hc,
		cache:  cfg.Cache,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

func (v *VersionKeys) VersionKey(ctx context.Context) (string, error) {
	if v.static != "" {
		return v.static, nil
	}
	if v.url == "" {
		return "", domain.ErrVersionKey
	}

	v.mu.RLock()
	key, at := v.cached, v.fetchedAt
	v.mu.RUnlock()
	if key != "" && v.now().Sub(at) < v.ttl {
		return key, nil
	}

	// The shared fetch outlives any single caller; each caller only waits on
	// its own context.
	ch := v.group.DoChan("version", func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), versionFetchTimeout)
		defer cancel()
		return v.load(fctx)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", domain.ErrVersionKey, ctx.Err())
	}
}

func (v *VersionKeys) load(ctx context.Context) (string, error) {
	if v.cache != nil {
		if b, ok, err := v.cache.Get(ctx, versionCacheKey); err != nil {
			v.log.Warn().Err(err).Msg("version key cache read failed")
		} else if ok && len(b) > 0 {
			v.remember(string(b))
			return string(b), nil
		}
	}

	key, err := v.fetch(ctx)
	if err != nil {
		return "", err
	}
	v.remember(key)

	if v.cache != nil {
		if err := v.cache.Set(ctx, versionCacheKey, []byte(key), v.ttl); err != nil {
			v.log.Warn().Err(err).Msg("version key cache write failed")
		}
	}
	return key, nil
}

func (v *VersionKeys) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrVersionKey, err)
	}
	resp, err := v.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrVersionKey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrVersionKey, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrVersionKey, err)
	}
	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrVersionKey)
	}
	return key, nil
}

func (v *VersionKeys) remember(key string) {
	v.mu.Lock()
	v.cached = key
	v.fetchedAt = v.now()
	v.mu.Unlock()
}
