package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/schnauzenportal/server/internal/models"
	"github.com/schnauzenportal/server/internal/pipeline"
)

// ---- Fakes -----------------------------------------------------------------

// stubCompletions drives the pipeline through its happy path.
type stubCompletions struct {
	lang string
}

func (s *stubCompletions) DetectLanguage(context.Context, string) (string, error) {
	return s.lang, nil
}

func (s *stubCompletions) Translate(_ context.Context, message, _ string) (string, error) {
	return message, nil
}

func (s *stubCompletions) ClassifyIntent(context.Context, string) (string, error) {
	return "true", nil
}

func (s *stubCompletions) ExtractFilter(context.Context, string) (string, error) {
	return `{"type": "hund"}`, nil
}

func (s *stubCompletions) ComposeAnswer(context.Context, string, string, []models.Pet) (string, error) {
	return `{"generalAnswer": "Hier ist Bello.", "individualPetAnswers": [{"petId": "1", "image": "i", "url": "u", "answer": "a"}]}`, nil
}

type stubRetriever struct{}

func (stubRetriever) SearchPets(context.Context, string, models.Filter) ([]models.Pet, error) {
	return []models.Pet{{ID: primitive.NewObjectID(), Name: "Bello", Type: "hund"}}, nil
}

type stubCatalog struct {
	page models.PetPage
}

func (s *stubCatalog) Browse(_ context.Context, _ models.Filter, limit, skip int64) (models.PetPage, error) {
	page := s.page
	page.Limit = limit
	page.Skip = skip
	return page, nil
}

func newTestApp() *fiber.App {
	app := fiber.New()
	pipe := pipeline.New(&stubCompletions{lang: "de"}, stubRetriever{}, "de", pipeline.FallbacksFor("en"))
	RegisterRoutes(app, pipe, &stubCatalog{page: models.PetPage{
		Total:   1,
		Results: []models.Pet{{ID: primitive.NewObjectID(), Name: "Bello", Type: "hund"}},
	}})
	return app
}

// ---- POST /search ----------------------------------------------------------

func TestSearchReturnsAnswer(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/search",
		strings.NewReader(`{"message": "Ich suche einen Hund."}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var answer models.Answer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	assert.Equal(t, "Hier ist Bello.", answer.GeneralAnswer)
	require.Len(t, answer.IndividualPetAnswers, 1)
	assert.Equal(t, "1", answer.IndividualPetAnswers[0].PetID)
}

func TestSearchRejectsMissingMessage(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchRejectsInvalidBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ---- GET /browse -----------------------------------------------------------

func TestBrowseReturnsPage(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/browse?type=hund&limit=5&skip=0", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page models.PetPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, int64(5), page.Limit)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Bello", page.Results[0].Name)
}

func TestBrowseNeverExposesEmbedding(t *testing.T) {
	app := fiber.New()
	pipe := pipeline.New(&stubCompletions{lang: "de"}, stubRetriever{}, "de", pipeline.FallbacksFor("en"))
	RegisterRoutes(app, pipe, &stubCatalog{page: models.PetPage{
		Total:   1,
		Results: []models.Pet{{ID: primitive.NewObjectID(), Name: "Bello", Embedding: []float32{1, 2, 3}}},
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/browse", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "embedding")
}

// ---- GET / -----------------------------------------------------------------

func TestRootBanner(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Schnauzenportal", string(body))
}
