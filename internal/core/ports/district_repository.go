package ports

import (
	"context"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

// DistrictRepository persists the district directory.
type DistrictRepository interface {
	FindByID(ctx context.Context, id string) (*domain.District, error)
	FindByHost(ctx context.Context, host string) (*domain.District, error)
	List(ctx context.Context) ([]*domain.District, error)
	Create(ctx context.Context, d *domain.District) error
	Delete(ctx context.Context, id string) error
}

// DistrictService resolves caller-supplied district references to hosts.
type DistrictService interface {
	Resolve(ctx context.Context, ref string) (string, error)
	Get(ctx context.Context, id string) (*domain.District, error)
	List(ctx context.Context) ([]*domain.District, error)
	Register(ctx context.Context, d domain.District) (*domain.District, error)
	Remove(ctx context.Context, id string) error
}
