// Package gemini generates student-facing explanations with the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/edulearn/edulearn-backend/internal/logger"
)

// Fallback strings returned instead of errors. Handlers put these straight
// into the response body, so the exact wording is part of the API.
const (
	MissingKeyReply = "Error: API Key Missing."
	NoContentReply  = "I am unable to generate an explanation right now."
	FailureReply    = "Connection to AI failed."
)

const promptTemplate = "Explain this concept to a %s student simply in 3 short sentences: %s"

// Explainer asks Gemini for a short explanation pitched at a class level.
// It never returns an error: every failure mode maps to a fixed reply.
type Explainer interface {
	Explain(ctx context.Context, question, studentClass string) string
}

type explainer struct {
	log    *logger.Logger
	client *genai.Client
	model  string
	hasKey bool
}

// NewExplainer builds the explainer. A missing API key is not fatal; the
// explainer reports it per request, matching the service's degrade-only
// error handling.
func NewExplainer(ctx context.Context, log *logger.Logger, apiKey, model string) Explainer {
	log = log.With("client", "GeminiExplainer")
	if apiKey == "" {
		log.Warn("GOOGLE_API_KEY not set, explanations disabled")
		return &explainer{log: log, model: model}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Warn("Could not create Gemini client", "error", err)
		return &explainer{log: log, model: model, hasKey: true}
	}
	return &explainer{log: log, client: client, model: model, hasKey: true}
}

func (e *explainer) Explain(ctx context.Context, question, studentClass string) string {
	if !e.hasKey {
		return MissingKeyReply
	}
	if e.client == nil {
		return FailureReply
	}
	prompt := fmt.Sprintf(promptTemplate, studentClass, question)
	result, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
	if err != nil {
		e.log.Warn("Gemini request failed", "error", err)
		return FailureReply
	}
	text := result.Text()
	if text == "" {
		return NoContentReply
	}
	return text
}
