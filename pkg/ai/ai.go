package ai

import (
	"context"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

type ModelName struct {
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type GenerateResult struct {
	Content string
	Model   string
	Usage   *openai.Usage
}

type EmbeddingResult struct {
	Vector []float32
	Model  string
	Usage  *openai.Usage
}

// ChatAI is the completion collaborator: one prompt plus a system
// instruction in, plain text out. No retries happen at this level.
type ChatAI interface {
	Generate(ctx context.Context, prompt, system string) (GenerateResult, error)
}

// EmbeddingAI is the embedding collaborator.
type EmbeddingAI interface {
	Embedding(ctx context.Context, content string) (EmbeddingResult, error)
}

type Driver interface {
	ChatAI
	EmbeddingAI
}

const defaultEncoding = "cl100k_base"

// NumTokens counts prompt tokens for the given model, falling back to the
// cl100k_base encoding for models tiktoken does not know.
func NumTokens(model, text string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(defaultEncoding)
		if err != nil {
			return len(text) / 4
		}
	}
	return len(enc.Encode(text, nil, nil))
}

// TruncateTokens clips text to at most limit tokens so a chunk that slightly
// exceeds the model context still summarizes instead of failing.
func TruncateTokens(model, text string, limit int) string {
	if limit <= 0 {
		return text
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if enc, err = tiktoken.GetEncoding(defaultEncoding); err != nil {
			return text
		}
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= limit {
		return text
	}
	return enc.Decode(tokens[:limit])
}
