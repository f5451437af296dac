// Package groq calls Groq's OpenAI-compatible chat completions API for the
// tutor persona.
package groq

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/edulearn/edulearn-backend/internal/config"
	"github.com/edulearn/edulearn-backend/internal/logger"
)

const systemPersona = "You are 'EduLearn Tutor', a friendly AI teacher for students. Keep answers simple, short (3 sentences), and encouraging."

type Client interface {
	Complete(ctx context.Context, message string) (string, error)
}

type client struct {
	log   *logger.Logger
	api   *openai.Client
	model string
}

// NewClient builds the chat client. A missing API key is reported per call
// so the tutor chat can fall through to its next layer.
func NewClient(log *logger.Logger, cfg config.ChatConfig, apiKey string) Client {
	log = log.With("client", "GroqChat")
	if apiKey == "" {
		log.Warn("GROQ_API_KEY not set, tutor chat will use fallbacks only")
		return &client{log: log, model: cfg.Model}
	}
	apiCfg := openai.DefaultConfig(apiKey)
	apiCfg.BaseURL = cfg.BaseURL
	return &client{
		log:   log,
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

func (c *client) Complete(ctx context.Context, message string) (string, error) {
	if c.api == nil {
		return "", fmt.Errorf("groq API key not configured")
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPersona},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   200,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion")
	}
	return resp.Choices[0].Message.Content, nil
}
