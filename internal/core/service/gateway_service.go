package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/gradepeek/svue-api/internal/api/metrics"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

// Operation names used for cache keys and usage events. They match the PXP
// method each one drives.
const (
	OpGradebook     = "Gradebook"
	OpStudentInfo   = "StudentInfo"
	OpStudentPhoto  = "StudentPhoto"
	OpSchoolInfo    = "StudentSchoolInfo"
	OpListDocuments = "GetStudentDocumentInitialData"
	OpGetDocument   = "GetContentOfAttachedDoc"
)

// Digester derives credential-free identifiers (keyed hashes).
type Digester interface {
	CacheKey(token *domain.AuthToken, method, params string) string
	Subject(districtURL, username string) string
}

// GatewayDeps groups the collaborators of GatewayService. Cache and Usage are
// optional.
type GatewayDeps struct {
	Client   ports.StudentVueClient
	Digester Digester
	Cache    ports.ResponseCache
	CacheTTL time.Duration
	Usage    ports.UsageRecorder
}

type GatewayService struct {
	client   ports.StudentVueClient
	digester Digester
	cache    ports.ResponseCache
	cacheTTL time.Duration
	usage    ports.UsageRecorder
	log      zerolog.Logger
	now      func() time.Time
}

var _ ports.GatewayService = (*GatewayService)(nil)

func NewGatewayService(deps GatewayDeps, log zerolog.Logger) *GatewayService {
	return &GatewayService{
		client:   deps.Client,
		digester: deps.Digester,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		usage:    deps.Usage,
		log:      log,
		now:      time.Now,
	}
}

func (s *GatewayService) Gradebook(ctx context.Context, token *domain.AuthToken, reportPeriod *int) (*domain.Gradebook, error) {
	params := ""
	if reportPeriod != nil {
		params = strconv.Itoa(*reportPeriod)
	}
	return cachedCall(ctx, s, token, OpGradebook, params, func() (*domain.Gradebook, error) {
		return s.client.Gradebook(ctx, token, reportPeriod)
	})
}

func (s *GatewayService) StudentInfo(ctx context.Context, token *domain.AuthToken) (*domain.StudentInfo, error) {
	return cachedCall(ctx, s, token, OpStudentInfo, "", func() (*domain.StudentInfo, error) {
		info, _, err := s.client.StudentInfo(ctx, token)
		return info, err
	})
}

func (s *GatewayService) SchoolInfo(ctx context.Context, token *domain.AuthToken) (*domain.SchoolInfo, error) {
	return cachedCall(ctx, s, token, OpSchoolInfo, "", func() (*domain.SchoolInfo, error) {
		return s.client.SchoolInfo(ctx, token)
	})
}

func (s *GatewayService) ListDocuments(ctx context.Context, token *domain.AuthToken) ([]domain.Document, error) {
	return cachedCall(ctx, s, token, OpListDocuments, "", func() ([]domain.Document, error) {
		return s.client.ListDocuments(ctx, token)
	})
}

// StudentPhoto is never cached; the photo rides on the StudentInfo call.
func (s *GatewayService) StudentPhoto(ctx context.Context, token *domain.AuthToken) ([]byte, error) {
	if token.IsEmpty() {
		return nil, domain.ErrEmptyCredentials
	}
	start := s.now()
	_, photo, err := s.client.StudentInfo(ctx, token)
	s.record(token, OpStudentPhoto, outcomeOf(err), start)
	if err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *GatewayService) GetDocument(ctx context.Context, token *domain.AuthToken, gu string) (*domain.DocumentContent, error) {
	if token.IsEmpty() {
		return nil, domain.ErrEmptyCredentials
	}
	start := s.now()
	doc, err := s.client.GetDocument(ctx, token, gu)
	s.record(token, OpGetDocument, outcomeOf(err), start)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// cachedCall serves a JSON-encodable result from the response cache when
// possible and otherwise from fetch, populating the cache on success. Cache
// failures only cost a round trip upstream.
func cachedCall[T any](ctx context.Context, s *GatewayService, token *domain.AuthToken, op, params string, fetch func() (T, error)) (T, error) {
	var zero T
	if token.IsEmpty() {
		return zero, domain.ErrEmptyCredentials
	}
	start := s.now()

	key := ""
	if s.cache != nil && s.cacheTTL > 0 {
		key = s.digester.CacheKey(token, op, params)
		if v, ok := s.lookup(ctx, key, op); ok {
			var out T
			if err := json.Unmarshal(v, &out); err == nil {
				s.record(token, op, domain.OutcomeCacheHit, start)
				return out, nil
			}
			s.log.Warn().Str("op", op).Msg("discarding undecodable cache entry")
		}
	}

	out, err := fetch()
	s.record(token, op, outcomeOf(err), start)
	if err != nil {
		return zero, err
	}

	if key != "" {
		s.store(ctx, key, op, out)
	}
	return out, nil
}

func (s *GatewayService) lookup(ctx context.Context, key, op string) ([]byte, bool) {
	v, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("op", op).Msg("response cache read failed")
		return nil, false
	case !ok:
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return v, true
}

func (s *GatewayService) store(ctx context.Context, key, op string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("response not cacheable")
		return
	}
	if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
		s.log.Warn().Err(err).Str("op", op).Msg("response cache write failed")
	}
}

func (s *GatewayService) record(token *domain.AuthToken, op string, outcome domain.UsageOutcome, start time.Time) {
	if s.usage == nil {
		return
	}
	now := s.now()
	s.usage.Record(domain.UsageEvent{
		ID:         ksuid.New().String(),
		Subject:    s.digester.Subject(token.DistrictURL, token.Username),
		District:   token.DistrictURL,
		Method:     op,
		Outcome:    outcome,
		DurationMs: now.Sub(start).Milliseconds(),
		At:         now.UTC(),
	})
}

func outcomeOf(err error) domain.UsageOutcome {
	switch {
	case err == nil:
		return domain.OutcomeOK
	case domain.IsUpstreamFailure(err) && !isCallerError(err):
		return domain.OutcomeUpstreamErr
	default:
		return domain.OutcomeFailed
	}
}

// isCallerError separates RT_ERROR replies caused by the caller (bad
// password and the like) from district-side failures.
func isCallerError(err error) bool {
	var ue *domain.UpstreamError
	return errors.As(err, &ue)
}
