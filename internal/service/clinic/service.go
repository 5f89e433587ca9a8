package clinic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/repository"
)

// Public clinic pages tolerate short staleness; schedule and booking data
// never go through this cache.
const (
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 15 * time.Minute
)

type Service struct {
	repo  repository.ClinicRepository
	cache *cache.Cache
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheCleanup),
	}
}

// GetPublicPage returns the clinic profile shown on its public page.
func (s *Service) GetPublicPage(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Clinic), nil
	}

	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(id.String(), clinic, cache.DefaultExpiration)
	return clinic, nil
}

// ListForDoctor returns the clinics a doctor practices at, uncached: the
// availability editor needs the current membership set.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.Clinic, error) {
	return s.repo.ListForDoctor(ctx, doctorID)
}
