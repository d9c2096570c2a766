package service

import "context"

// Dummy implementations used for local development and wiring tests, so the
// server can start without any model credentials.

type dummyEmbedder struct{}

func (d dummyEmbedder) Embed(context.Context, string) ([]float32, error) {
	return make([]float32, 1536), nil
}

func NewDummyEmbedder() Embedder {
	return dummyEmbedder{}
}

type dummyLLM struct{}

func (d dummyLLM) GenerateText(context.Context, string) (string, error) {
	return "<placeholder answer>", nil
}

func NewDummyLLM() TextGenerator {
	return dummyLLM{}
}
