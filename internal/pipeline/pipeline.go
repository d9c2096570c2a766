// Package pipeline implements the conversational search workflow: a fixed
// directed graph of stages operating on a per-request State. Every stage that
// parses model output recovers locally to a safe default, so a run always
// terminates with a response; only transport-level completion failures
// propagate to the caller.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/schnauzenportal/server/internal/models"
)

// ---- Service contracts -----------------------------------------------------

// CompletionClient is the prompt-templated model surface the stages call.
// Structured operations (ExtractFilter, ComposeAnswer) return raw text that
// the pipeline parses itself.
type CompletionClient interface {
	DetectLanguage(ctx context.Context, message string) (string, error)
	Translate(ctx context.Context, message, lang string) (string, error)
	ClassifyIntent(ctx context.Context, message string) (string, error)
	ExtractFilter(ctx context.Context, message string) (string, error)
	ComposeAnswer(ctx context.Context, message, lang string, pets []models.Pet) (string, error)
}

// PetRetriever runs the embedding + vector search round trip.
type PetRetriever interface {
	SearchPets(ctx context.Context, query string, filter models.Filter) ([]models.Pet, error)
}

// ---- Stage graph -----------------------------------------------------------

// Stage identifies one unit of work in the workflow.
type Stage string

const (
	StageDetectLanguage   Stage = "detectLanguage"
	StageTranslateMessage Stage = "translateMessage"
	StageCheckIntent      Stage = "checkIfLookingForPet"
	StageExtractFilter    Stage = "extractFilterValues"
	StageVectorQuery      Stage = "vectorQuery"
	StageComposeAnswer    Stage = "composeAnswer"

	// Terminal fallback branches; they produce a fixed response and skip the
	// rest of the graph.
	StageUnknownLanguage  Stage = "fallbackUnknownLanguage"
	StageNotLookingForPet Stage = "fallbackNotLookingForPet"

	StageDone Stage = "done"
)

// LangUnknown is the sentinel returned by language detection when the message
// contains no identifiable language.
const LangUnknown = "unknown"

// Pipeline owns the stage graph and the injected service handles. It is
// stateless across runs; construct once at startup and share between request
// handlers.
type Pipeline struct {
	completions CompletionClient
	retriever   PetRetriever
	workingLang string
	fallbacks   Fallbacks
}

// New wires the pipeline dependencies. workingLang is the language every
// filter/retrieval/composition step is normalised to.
func New(completions CompletionClient, retriever PetRetriever, workingLang string, fallbacks Fallbacks) *Pipeline {
	return &Pipeline{
		completions: completions,
		retriever:   retriever,
		workingLang: workingLang,
		fallbacks:   fallbacks,
	}
}

// Run executes one conversation: the user message goes in, exactly one
// structured answer comes out. A non-nil error means an unguarded external
// call failed; there is no partial result in that case.
func (p *Pipeline) Run(ctx context.Context, message string) (models.Answer, error) {
	state := State{Lang: p.workingLang}
	state.apply(Update{AppendMessages: []Message{{Role: roleUser, Content: message}}})

	for stage := StageDetectLanguage; stage != StageDone; {
		update, err := p.step(ctx, stage, &state)
		if err != nil {
			return models.Answer{}, fmt.Errorf("stage %s: %w", stage, err)
		}
		state.apply(update)
		stage = Next(stage, &state)
	}

	if state.Response == nil {
		// Unreachable with the current graph; every terminal path sets it.
		return models.Answer{}, fmt.Errorf("pipeline finished without a response")
	}
	return *state.Response, nil
}

// step dispatches one stage against the current state.
func (p *Pipeline) step(ctx context.Context, stage Stage, state *State) (Update, error) {
	switch stage {
	case StageDetectLanguage:
		return p.detectLanguage(ctx, state)
	case StageTranslateMessage:
		return p.translateMessage(ctx, state)
	case StageCheckIntent:
		return p.checkIfLookingForPet(ctx, state)
	case StageExtractFilter:
		return p.extractFilterValues(ctx, state)
	case StageVectorQuery:
		return p.vectorQuery(ctx, state)
	case StageComposeAnswer:
		return p.composeAnswer(ctx, state)
	case StageUnknownLanguage:
		return p.fallbackAnswer(p.fallbacks.UnknownLanguage), nil
	case StageNotLookingForPet:
		return p.fallbackAnswer(p.fallbacks.NotLookingForPet), nil
	}
	return Update{}, fmt.Errorf("unknown stage %q", stage)
}

// Next is the pure transition function of the stage graph. Language detection
// takes priority over intent classification; intent classification takes
// priority over filter extraction.
func Next(stage Stage, state *State) Stage {
	switch stage {
	case StageDetectLanguage:
		if state.Lang == LangUnknown {
			return StageUnknownLanguage
		}
		return StageTranslateMessage
	case StageTranslateMessage:
		return StageCheckIntent
	case StageCheckIntent:
		if state.IsLookingForPet {
			return StageExtractFilter
		}
		return StageNotLookingForPet
	case StageExtractFilter:
		return StageVectorQuery
	case StageVectorQuery:
		return StageComposeAnswer
	}
	// ComposeAnswer and both fallback stages terminate the run.
	return StageDone
}

// ---- Stages ----------------------------------------------------------------

// detectLanguage stores the ISO 639-1 code of the last user message, or the
// "unknown" sentinel.
func (p *Pipeline) detectLanguage(ctx context.Context, state *State) (Update, error) {
	lang, err := p.completions.DetectLanguage(ctx, state.lastMessage())
	if err != nil {
		return Update{}, err
	}
	return Update{Lang: &lang}, nil
}

// translateMessage normalises the last user message into the working
// language. Identity when the message already is in it, no model call.
func (p *Pipeline) translateMessage(ctx context.Context, state *State) (Update, error) {
	if state.Lang == p.workingLang {
		msg := state.lastMessage()
		return Update{TranslatedMessage: &msg}, nil
	}

	translated, err := p.completions.Translate(ctx, state.lastMessage(), state.Lang)
	if err != nil {
		return Update{}, err
	}
	return Update{TranslatedMessage: &translated}, nil
}

// checkIfLookingForPet classifies adoption intent. Only the literal string
// "true" counts as positive.
func (p *Pipeline) checkIfLookingForPet(ctx context.Context, state *State) (Update, error) {
	out, err := p.completions.ClassifyIntent(ctx, state.TranslatedMessage)
	if err != nil {
		return Update{}, err
	}
	looking := strings.TrimSpace(out) == "true"
	return Update{IsLookingForPet: &looking}, nil
}

// extractFilterValues parses the model's JSON filter. Malformed output
// degrades to the fully permissive filter instead of failing the run.
func (p *Pipeline) extractFilterValues(ctx context.Context, state *State) (Update, error) {
	raw, err := p.completions.ExtractFilter(ctx, state.TranslatedMessage)
	if err != nil {
		return Update{}, err
	}

	var filter models.Filter
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &filter); err != nil {
		slog.Error("failed to parse filter values, continuing unfiltered", "error", err)
		filter = models.Filter{Type: nil}
	}
	return Update{Filter: &filter}, nil
}

// vectorQuery retrieves matching pets. Any retrieval error is converted to an
// empty result set; the request never fails here.
func (p *Pipeline) vectorQuery(ctx context.Context, state *State) (Update, error) {
	pets, err := p.retriever.SearchPets(ctx, state.TranslatedMessage, state.Filter)
	if err != nil {
		slog.Error("vector search failed, continuing with no pets", "error", err)
		pets = []models.Pet{}
	}
	return Update{Pets: &pets}, nil
}

// composeAnswer asks the model for the final structured answer, in the
// language of the original message. Malformed output degrades to a fixed
// localized error answer.
func (p *Pipeline) composeAnswer(ctx context.Context, state *State) (Update, error) {
	raw, err := p.completions.ComposeAnswer(ctx, state.lastMessage(), state.Lang, state.Pets)
	if err != nil {
		return Update{}, err
	}

	var answer models.Answer
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &answer); err != nil {
		slog.Error("failed to parse composed answer", "error", err)
		answer = models.Answer{
			GeneralAnswer:        p.fallbacks.ComposeFailed,
			IndividualPetAnswers: []models.IndividualPetAnswer{},
		}
	}
	if answer.IndividualPetAnswers == nil {
		answer.IndividualPetAnswers = []models.IndividualPetAnswer{}
	}
	return Update{Response: &answer}, nil
}

// fallbackAnswer builds the fixed response of a terminal fallback branch.
func (p *Pipeline) fallbackAnswer(text string) Update {
	return Update{Response: &models.Answer{
		GeneralAnswer:        text,
		IndividualPetAnswers: []models.IndividualPetAnswer{},
	}}
}

// stripCodeFence removes the markdown fence some models wrap JSON output in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
