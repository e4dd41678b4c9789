package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint through eino.
type OpenAI struct {
	chat  *openai.ChatModel
	model string
}

func NewOpenAI(ctx context.Context, apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("missing OPENAI_API_KEY")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	cfg := &openai.ChatModelConfig{
		Model:  model,
		APIKey: apiKey,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	chat, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &OpenAI{chat: chat, model: model}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Translate(ctx context.Context, text, target string) (string, error) {
	msg, err := o.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage("You are a professional translator."),
		schema.UserMessage(prompt(text, languageName(target))),
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	out := stripCodeFences(msg.Content)
	if out == "" {
		return "", errors.New("openai returned an empty translation")
	}
	return out, nil
}
