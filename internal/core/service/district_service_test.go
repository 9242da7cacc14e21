package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/core/domain"
)

type stubDistrictRepo struct {
	byID    map[string]*domain.District
	findErr error
}

func newStubDistrictRepo(ds ...domain.District) *stubDistrictRepo {
	r := &stubDistrictRepo{byID: map[string]*domain.District{}}
	for i := range ds {
		d := ds[i]
		r.byID[d.ID] = &d
	}
	return r
}

func (r *stubDistrictRepo) FindByID(_ context.Context, id string) (*domain.District, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDistrictNotFound
	}
	return d, nil
}

func (r *stubDistrictRepo) FindByHost(_ context.Context, host string) (*domain.District, error) {
	for _, d := range r.byID {
		if d.Host == host {
			return d, nil
		}
	}
	return nil, domain.ErrDistrictNotFound
}

func (r *stubDistrictRepo) List(context.Context) ([]*domain.District, error) {
	out := make([]*domain.District, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubDistrictRepo) Create(_ context.Context, d *domain.District) error {
	if _, ok := r.byID[d.ID]; ok {
		return domain.ErrDistrictExists
	}
	r.byID[d.ID] = d
	return nil
}

func (r *stubDistrictRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrDistrictNotFound
	}
	delete(r.byID, id)
	return nil
}

var mcps = domain.District{ID: "mcps", Name: "Montgomery County", Host: "md-mcps-psv.edupoint.com", State: "MD"}

func TestDistrict_Resolve(t *testing.T) {
	svc := NewDistrictService(newStubDistrictRepo(mcps), zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{"by id", "mcps", "md-mcps-psv.edupoint.com", nil},
		{"by id mixed case", " MCPS ", "md-mcps-psv.edupoint.com", nil},
		{"by registered host", "md-mcps-psv.edupoint.com", "md-mcps-psv.edupoint.com", nil},
		{"unknown id", "nowhere", "", domain.ErrDistrictNotFound},
		{"unregistered host", "evil.example.com", "", domain.ErrDistrictNotFound},
		{"malformed host", "bad..host", "", domain.ErrInvalidDistrict},
		{"empty", "", "", domain.ErrDistrictNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Resolve = %q, %v", got, err)
			}
		})
	}
}

func TestDistrict_Register(t *testing.T) {
	repo := newStubDistrictRepo(mcps)
	svc := NewDistrictService(repo, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	d, err := svc.Register(context.Background(), domain.District{ID: " FCPS ", Host: "VA-FCPS-PSV.edupoint.com", State: "va"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if d.ID != "fcps" || d.Host != "va-fcps-psv.edupoint.com" || d.State != "VA" || d.Name != "fcps" {
		t.Fatalf("not normalised: %+v", d)
	}
	if !d.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("created_at = %v", d.CreatedAt)
	}
	if _, ok := repo.byID["fcps"]; !ok {
		t.Fatal("district not persisted")
	}

	if _, err := svc.Register(context.Background(), domain.District{ID: "mcps", Host: "x.example.com"}); !errors.Is(err, domain.ErrDistrictExists) {
		t.Fatalf("expected ErrDistrictExists, got %v", err)
	}
	for _, bad := range []domain.District{
		{ID: "", Host: "a.example.com"},
		{ID: "has space", Host: "a.example.com"},
		{ID: "ok", Host: "localhost"},
		{ID: "ok", Host: "https://a.example.com"},
	} {
		if _, err := svc.Register(context.Background(), bad); !errors.Is(err, domain.ErrInvalidDistrict) {
			t.Errorf("Register(%+v): expected ErrInvalidDistrict, got %v", bad, err)
		}
	}
}

func TestDistrict_RegisterPropagatesRepoErrors(t *testing.T) {
	repo := newStubDistrictRepo()
	repo.findErr = errors.New("mongo down")
	svc := NewDistrictService(repo, zerolog.Nop())

	_, err := svc.Register(context.Background(), domain.District{ID: "fcps", Host: "a.example.com"})
	if err == nil || errors.Is(err, domain.ErrDistrictExists) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestDistrict_RemoveGetList(t *testing.T) {
	svc := NewDistrictService(newStubDistrictRepo(mcps), zerolog.Nop())
	ctx := context.Background()

	d, err := svc.Get(ctx, "MCPS")
	if err != nil || d.Host != mcps.Host {
		t.Fatalf("Get = %+v, %v", d, err)
	}
	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
	if err := svc.Remove(ctx, "mcps"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(ctx, "mcps"); !errors.Is(err, domain.ErrDistrictNotFound) {
		t.Fatalf("expected ErrDistrictNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, "mcps"); !errors.Is(err, domain.ErrDistrictNotFound) {
		t.Fatalf("expected ErrDistrictNotFound, got %v", err)
	}
}

func TestDistrict_Seed(t *testing.T) {
	repo := newStubDistrictRepo(mcps)
	svc := NewDistrictService(repo, zerolog.Nop())

	err := svc.Seed(context.Background(), []domain.District{
		mcps,
		{ID: "fcps", Host: "va-fcps-psv.edupoint.com"},
		{ID: "broken", Host: "not a host"},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(repo.byID) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(repo.byID))
	}
}
