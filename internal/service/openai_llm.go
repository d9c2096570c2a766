package service

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Sampling temperature used for every pipeline prompt.
const completionTemperature = 0.5

// OpenAILLM implements TextGenerator on top of a hosted OpenAI chat model.
type OpenAILLM struct {
	llm *openai.LLM
}

// NewOpenAILLM creates a generator for the given model (e.g. "gpt-3.5-turbo").
func NewOpenAILLM(token, model string) (*OpenAILLM, error) {
	llm, err := openai.New(
		openai.WithToken(token),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAILLM{llm: llm}, nil
}

// GenerateText runs one completion round trip.
func (o *OpenAILLM) GenerateText(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithTemperature(completionTemperature))
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}
	return out, nil
}
