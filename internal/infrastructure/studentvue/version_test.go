package studentvue

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

type stubCache struct {
	data map[string][]byte
	sets int
}

func newStubCache() *stubCache { return &stubCache{data: map[string][]byte{}} }

func (s *stubCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.sets++
	s.data[key] = value
	return nil
}

func keyServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestVersionKeys_StaticWins(t *testing.T) {
	srv, hits := keyServer(t, http.StatusOK, "remote")
	v := NewVersionKeys(VersionKeysConfig{Static: " 1.2.3 ", URL: srv.URL}, zerolog.Nop())

	key, err := v.VersionKey(context.Background())
	if err != nil || key != "1.2.3" {
		t.Fatalf("VersionKey = %q, %v", key, err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Fatal("remote endpoint should not be called when a static key is set")
	}
}

func TestVersionKeys_Unconfigured(t *testing.T) {
	v := NewVersionKeys(VersionKeysConfig{}, zerolog.Nop())
	if _, err := v.VersionKey(context.Background()); !errors.Is(err, domain.ErrVersionKey) {
		t.Fatalf("expected ErrVersionKey, got %v", err)
	}
}

func TestVersionKeys_FetchAndMemoise(t *testing.T) {
	srv, hits := keyServer(t, http.StatusOK, "  abc123\n")
	cache := newStubCache()
	v := NewVersionKeys(VersionKeysConfig{URL: srv.URL, HTTPClient: srv.Client(), TTL: time.Minute, Cache: cache}, zerolog.Nop())

	now := time.Unix(1_700_000_000, 0)
	v.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		key, err := v.VersionKey(context.Background())
		if err != nil || key != "abc123" {
			t.Fatalf("VersionKey = %q, %v", key, err)
		}
	}
	if got := atomic.LoadInt32(hits); got != 1 {
		t.Fatalf("expected 1 fetch, got %d", got)
	}
	if string(cache.data[versionCacheKey]) != "abc123" {
		t.Fatalf("key not written to shared cache: %q", cache.data[versionCacheKey])
	}

	// past the TTL the shared cache is consulted before the endpoint
	now = now.Add(2 * time.Minute)
	cache.data[versionCacheKey] = []byte("fromcache")
	key, err := v.VersionKey(context.Background())
	if err != nil || key != "fromcache" {
		t.Fatalf("VersionKey = %q, %v", key, err)
	}
	if got := atomic.LoadInt32(hits); got != 1 {
		t.Fatalf("expected no extra fetch, got %d", got)
	}
}

func TestVersionKeys_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad status", http.StatusServiceUnavailable, "down"},
		{"empty body", http.StatusOK, "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := keyServer(t, tt.status, tt.body)
			v := NewVersionKeys(VersionKeysConfig{URL: srv.URL, HTTPClient: srv.Client()}, zerolog.Nop())
			if _, err := v.VersionKey(context.Background()); !errors.Is(err, domain.ErrVersionKey) {
				t.Fatalf("expected ErrVersionKey, got %v", err)
			}
		})
	}
}

func TestVersionKeys_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var hits int32
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			close(started)
		}
		<-release
		_, _ = io.WriteString(w, "shared-key")
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() {
		select {
		case <-release:
		default:
			close(release)
		}
	})

	v := NewVersionKeys(VersionKeysConfig{URL: srv.URL}, zerolog.Nop())

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := v.VersionKey(ctx1)
		first <- err
	}()
	<-started

	type result struct {
		key string
		err error
	}
	second := make(chan result, 1)
	go func() {
		key, err := v.VersionKey(context.Background())
		second <- result{key, err}
	}()

	cancel1()
	if err := <-first; !errors.Is(err, domain.ErrVersionKey) {
		t.Fatalf("cancelled caller: expected ErrVersionKey, got %v", err)
	}

	// Let the second caller join the in-flight fetch before it completes.
	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case res := <-second:
		if res.err != nil || res.key != "shared-key" {
			t.Fatalf("second caller: VersionKey = %q, %v", res.key, res.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second caller did not return")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected one upstream fetch, got %d", n)
	}
}
