package service

import (
	"context"
	"fmt"

	"github.com/schnauzenportal/server/internal/models"
)

// DefaultBrowseLimit is the page size used when the client passes none.
const DefaultBrowseLimit = 9

// ---- Repository contract ---------------------------------------------------

// PetCatalogRepository exposes plain (non-vector) catalog queries.
type PetCatalogRepository interface {
	// FindPets returns one page of pets matching filter, with the embedding
	// field always excluded from the projection.
	FindPets(ctx context.Context, filter models.Filter, limit, skip int64) (models.PetPage, error)
}

// ---- Service interface + implementation ------------------------------------

// CatalogService backs the browsing UI with paginated, filterable list queries.
type CatalogService interface {
	Browse(ctx context.Context, filter models.Filter, limit, skip int64) (models.PetPage, error)
}

type catalogService struct {
	repo PetCatalogRepository
}

// NewCatalogService returns a concrete implementation.
func NewCatalogService(repo PetCatalogRepository) CatalogService {
	return &catalogService{repo: repo}
}

// Browse normalises paging arguments and delegates to the repository.
func (s *catalogService) Browse(ctx context.Context, filter models.Filter, limit, skip int64) (models.PetPage, error) {
	if limit <= 0 {
		limit = DefaultBrowseLimit
	}
	if skip < 0 {
		skip = 0
	}

	page, err := s.repo.FindPets(ctx, filter, limit, skip)
	if err != nil {
		return models.PetPage{}, fmt.Errorf("failed to browse pets: %w", err)
	}
	return page, nil
}
