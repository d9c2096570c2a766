package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elliotchance/pie/v2"

	"github.com/schnauzenportal/server/internal/models"
	"github.com/schnauzenportal/server/internal/prompts"
)

// ---- Model contract --------------------------------------------------------

// TextGenerator is one blocking round trip to a chat-completion model:
// a single prompt string in, the raw model output out. No retries, no
// streaming; cancellation is up to the caller's context.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ---- Completion service ----------------------------------------------------

// CompletionService renders a prompt template and runs it through the
// configured model, one operation per conversation-pipeline step. Output is
// returned as untyped text; structured operations are parsed by the caller.
type CompletionService struct {
	gen         TextGenerator
	workingLang string
}

// NewCompletionService wires a text generator and the working language the
// pipeline normalises messages into.
func NewCompletionService(gen TextGenerator, workingLang string) *CompletionService {
	return &CompletionService{gen: gen, workingLang: workingLang}
}

// DetectLanguage returns the ISO 639-1 code of the message, or "unknown".
func (s *CompletionService) DetectLanguage(ctx context.Context, message string) (string, error) {
	prompt, err := prompts.DetectLanguage(message)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}

// Translate converts a message from lang into the working language.
func (s *CompletionService) Translate(ctx context.Context, message, lang string) (string, error) {
	prompt, err := prompts.Translate(message, lang, s.workingLang)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ClassifyIntent asks whether the message is about adopting a pet. The model
// is instructed to answer with the literal string "true" or "false".
func (s *CompletionService) ClassifyIntent(ctx context.Context, message string) (string, error) {
	prompt, err := prompts.CheckIntent(message)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ExtractFilter asks for the structured search filter as a JSON object body.
// The raw text is returned; parse failures are the caller's concern.
func (s *CompletionService) ExtractFilter(ctx context.Context, message string) (string, error) {
	prompt, err := prompts.ExtractFilter(message)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return s.gen.GenerateText(ctx, prompt)
}

// promptPet is the view of a catalog entry handed to the model: everything a
// tailored answer needs, without the embedding or the similarity score.
type promptPet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Breed     string `json:"breed"`
	Gender    string `json:"gender"`
	Neutered  bool   `json:"neutered"`
	BirthYear int    `json:"birth_year"`
	Image     string `json:"image"`
	URL       string `json:"url"`
	Text      string `json:"text"`
}

// ComposeAnswer asks the model for the final structured response, written in
// lang, based on the original message and the matched pets.
func (s *CompletionService) ComposeAnswer(ctx context.Context, message, lang string, pets []models.Pet) (string, error) {
	docs := pie.Map(pets, func(p models.Pet) promptPet {
		return promptPet{
			ID:        p.ID.Hex(),
			Name:      p.Name,
			Type:      p.Type,
			Breed:     p.Breed,
			Gender:    p.Gender,
			Neutered:  p.Neutered,
			BirthYear: p.BirthYear,
			Image:     p.Image,
			URL:       p.URL,
			Text:      p.Text,
		}
	})

	if docs == nil {
		docs = []promptPet{} // render an empty list, not JSON null
	}

	petsJSON, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pets: %w", err)
	}

	prompt, err := prompts.ComposeAnswer(message, lang, string(petsJSON))
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return s.gen.GenerateText(ctx, prompt)
}
