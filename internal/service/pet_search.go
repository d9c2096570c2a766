package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schnauzenportal/server/internal/models"
)

// ---- Repository contract ---------------------------------------------------

// PetVectorIndex exposes similarity search over the pet embeddings.
type PetVectorIndex interface {
	// VectorSearch returns the top-k pets whose stored embedding is most
	// similar to queryVec, optionally constrained by filter. The
	// implementation uses MongoDB Atlas Vector Search.
	VectorSearch(ctx context.Context, queryVec []float32, filter models.Filter, k int) ([]models.Pet, error)
}

// ---- Service interface + implementation ------------------------------------

// PetSearchService converts a free-text query into an embedding and performs
// a K-NN search through the pet vector index. Results keep the index order;
// no re-ranking happens here.
type PetSearchService interface {
	SearchPets(ctx context.Context, query string, filter models.Filter) ([]models.Pet, error)
}

type petSearchService struct {
	repo     PetVectorIndex
	embedder Embedder
	limit    int
}

// NewPetSearchService wires the repository, the embedder and the result limit.
func NewPetSearchService(repo PetVectorIndex, embedder Embedder, limit int) PetSearchService {
	return &petSearchService{
		repo:     repo,
		embedder: embedder,
		limit:    limit,
	}
}

// SearchPets embeds the query string and calls the repository's VectorSearch.
// Errors are returned as-is; the conversation pipeline decides how to recover.
func (s *petSearchService) SearchPets(ctx context.Context, query string, filter models.Filter) ([]models.Pet, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	pets, err := s.repo.VectorSearch(ctx, vec, filter, s.limit)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	slog.Debug("vector search finished", "query", query, "results", len(pets))

	if len(pets) == 0 {
		return []models.Pet{}, nil
	}
	return pets, nil
}
