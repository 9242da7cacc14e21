package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

var (
	districtIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,63}$`)
	hostPattern       = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+(:[0-9]{1,5})?$`)
)

// DistrictService maintains the district directory and turns the X-District
// reference a caller sends into the host its credentials are forwarded to.
type DistrictService struct {
	repo ports.DistrictRepository
	log  zerolog.Logger
	now  func() time.Time
}

var _ ports.DistrictService = (*DistrictService)(nil)

func NewDistrictService(repo ports.DistrictRepository, log zerolog.Logger) *DistrictService {
	return &DistrictService{repo: repo, log: log, now: time.Now}
}

// Resolve accepts either a district ID or a registered host. Hosts that are
// not in the directory are refused so callers cannot aim credentials at an
// arbitrary server.
func (s *DistrictService) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", domain.ErrDistrictNotFound
	}

	var (
		d   *domain.District
		err error
	)
	if strings.Contains(ref, ".") {
		if !hostPattern.MatchString(ref) {
			return "", fmt.Errorf("resolve district: %w: malformed host", domain.ErrInvalidDistrict)
		}
		d, err = s.repo.FindByHost(ctx, ref)
	} else {
		d, err = s.repo.FindByID(ctx, ref)
	}
	if err != nil {
		return "", fmt.Errorf("resolve district: %w", err)
	}
	return d.Host, nil
}

func (s *DistrictService) Get(ctx context.Context, id string) (*domain.District, error) {
	d, err := s.repo.FindByID(ctx, strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		return nil, fmt.Errorf("get district: %w", err)
	}
	return d, nil
}

func (s *DistrictService) List(ctx context.Context) ([]*domain.District, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return list, nil
}

// Register normalises and validates d before adding it to the directory.
func (s *DistrictService) Register(ctx context.Context, d domain.District) (*domain.District, error) {
	d.ID = strings.ToLower(strings.TrimSpace(d.ID))
	d.Host = strings.ToLower(strings.TrimSpace(d.Host))
	d.Name = strings.TrimSpace(d.Name)
	d.State = strings.ToUpper(strings.TrimSpace(d.State))

	if !districtIDPattern.MatchString(d.ID) {
		return nil, fmt.Errorf("register district: %w: bad id %q", domain.ErrInvalidDistrict, d.ID)
	}
	if !hostPattern.MatchString(d.Host) {
		return nil, fmt.Errorf("register district: %w: bad host %q", domain.ErrInvalidDistrict, d.Host)
	}
	if d.Name == "" {
		d.Name = d.ID
	}

	if _, err := s.repo.FindByID(ctx, d.ID); err == nil {
		return nil, domain.ErrDistrictExists
	} else if !errors.Is(err, domain.ErrDistrictNotFound) {
		return nil, fmt.Errorf("register district: %w", err)
	}

	d.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, &d); err != nil {
		return nil, fmt.Errorf("register district: %w", err)
	}

	s.log.Info().Str("district_id", d.ID).Str("host", d.Host).Msg("district registered")
	return &d, nil
}

func (s *DistrictService) Remove(ctx context.Context, id string) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove district: %w", err)
	}
	s.log.Info().Str("district_id", id).Msg("district removed")
	return nil
}

// Seed registers every district not already present. Entries that fail
// validation are logged and skipped.
func (s *DistrictService) Seed(ctx context.Context, districts []domain.District) error {
	for _, d := range districts {
		_, err := s.Register(ctx, d)
		switch {
		case err == nil, errors.Is(err, domain.ErrDistrictExists):
		case errors.Is(err, domain.ErrInvalidDistrict):
			s.log.Warn().Err(err).Msg("skipping seed district")
		default:
			return fmt.Errorf("seed districts: %w", err)
		}
	}
	return nil
}
