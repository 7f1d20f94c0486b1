package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/knowscan-ai/knowscan/pkg/ai"
)

const NAME = "openai"

type Driver struct {
	client *openai.Client
	model  ai.ModelName
}

// New builds a driver against the OpenAI API or any compatible endpoint
// (endpoint empty means the public API).
func New(token, endpoint string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.LargeEmbedding3)
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) Generate(ctx context.Context, prompt, system string) (ai.GenerateResult, error) {
	slog.Debug("Generate", slog.String("driver", NAME), slog.String("model", s.model.ChatModel))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model.ChatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return ai.GenerateResult{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ai.GenerateResult{}, fmt.Errorf("chat completion returned no choices, model %s", s.model.ChatModel)
	}

	return ai.GenerateResult{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage:   &resp.Usage,
	}, nil
}

func (s *Driver) Embedding(ctx context.Context, content string) (ai.EmbeddingResult, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.String("model", s.model.EmbeddingModel))

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(s.model.EmbeddingModel),
		Input: []string{content},
	})
	if err != nil {
		return ai.EmbeddingResult{}, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return ai.EmbeddingResult{}, fmt.Errorf("embedding returned no data, model %s", s.model.EmbeddingModel)
	}

	return ai.EmbeddingResult{
		Vector: resp.Data[0].Embedding,
		Model:  string(resp.Model),
		Usage:  &resp.Usage,
	}, nil
}
