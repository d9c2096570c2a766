package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schnauzenportal/server/internal/models"
)

// fakeCatalogRepo pages over an in-memory slice the way the Mongo repository
// pages over the collection.
type fakeCatalogRepo struct {
	pets []models.Pet
}

func (f *fakeCatalogRepo) FindPets(_ context.Context, filter models.Filter, limit, skip int64) (models.PetPage, error) {
	matched := []models.Pet{}
	for _, p := range f.pets {
		if filter.Type != nil && p.Type != *filter.Type {
			continue
		}
		matched = append(matched, p)
	}

	total := int64(len(matched))
	start := skip
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return models.PetPage{
		Total:   total,
		Skip:    skip,
		Limit:   limit,
		Results: matched[start:end],
	}, nil
}

func makePets(n int, petType string) []models.Pet {
	pets := make([]models.Pet, n)
	for i := range pets {
		pets[i] = models.Pet{ID: primitive.NewObjectID(), Type: petType}
	}
	return pets
}

func TestBrowseDefaultsLimit(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogRepo{pets: makePets(20, "hund")})

	page, err := svc.Browse(context.Background(), models.Filter{}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultBrowseLimit), page.Limit)
	assert.Len(t, page.Results, DefaultBrowseLimit)
	assert.Equal(t, int64(20), page.Total)
}

func TestBrowsePagesAreDisjoint(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogRepo{pets: makePets(12, "hund")})

	first, err := svc.Browse(context.Background(), models.Filter{}, 5, 0)
	require.NoError(t, err)
	second, err := svc.Browse(context.Background(), models.Filter{}, 5, 5)
	require.NoError(t, err)

	require.Len(t, first.Results, 5)
	require.Len(t, second.Results, 5)

	seen := map[string]bool{}
	for _, p := range first.Results {
		seen[p.ID.Hex()] = true
	}
	for _, p := range second.Results {
		assert.False(t, seen[p.ID.Hex()], "page slices must not overlap")
	}
}

func TestBrowseAppliesTypeFilter(t *testing.T) {
	pets := append(makePets(3, "hund"), models.Pet{ID: primitive.NewObjectID(), Type: "katze"})
	svc := NewCatalogService(&fakeCatalogRepo{pets: pets})

	katze := "katze"
	page, err := svc.Browse(context.Background(), models.Filter{Type: &katze}, 9, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "katze", page.Results[0].Type)
}

func TestBrowseClampsNegativeSkip(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogRepo{pets: makePets(3, "hund")})

	page, err := svc.Browse(context.Background(), models.Filter{}, 9, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Skip)
	assert.Len(t, page.Results, 3)
}
