// Package memory holds the in-process district directory used when MongoDB is
// not configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

type DistrictRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.District
}

var _ ports.DistrictRepository = (*DistrictRepository)(nil)

func NewDistrictRepository() *DistrictRepository {
	return &DistrictRepository{byID: make(map[string]domain.District)}
}

func (r *DistrictRepository) FindByID(_ context.Context, id string) (*domain.District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDistrictNotFound
	}
	return &d, nil
}

func (r *DistrictRepository) FindByHost(_ context.Context, host string) (*domain.District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byID {
		if d.Host == host {
			return &d, nil
		}
	}
	return nil, domain.ErrDistrictNotFound
}

func (r *DistrictRepository) List(_ context.Context) ([]*domain.District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.District, 0, len(r.byID))
	for _, d := range r.byID {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create enforces the same uniqueness as the Mongo indexes: ID and host.
func (r *DistrictRepository) Create(_ context.Context, d *domain.District) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[d.ID]; ok {
		return domain.ErrDistrictExists
	}
	for _, existing := range r.byID {
		if existing.Host == d.Host {
			return domain.ErrDistrictExists
		}
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *DistrictRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrDistrictNotFound
	}
	delete(r.byID, id)
	return nil
}
