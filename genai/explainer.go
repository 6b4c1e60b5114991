// Package genai generates commit messages from diff analyses using the
// Google GenAI API.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/diffscope"
	"google.golang.org/genai"
)

// Compile-time interface verification.
var _ diffscope.Explainer = (*Explainer)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Explainer turns a DiffAnalysis into a conventional commit message.
type Explainer struct {
	client *genai.Client
	model  string
}

// ExplainerOption configures an Explainer.
type ExplainerOption func(*Explainer)

// WithModel overrides the default model.
func WithModel(model string) ExplainerOption {
	return func(e *Explainer) { e.model = model }
}

// NewExplainer creates an Explainer. Credentials are resolved by the client
// from the environment (GEMINI_API_KEY or GOOGLE_API_KEY).
func NewExplainer(ctx context.Context, opts ...ExplainerOption) (*Explainer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	e := &Explainer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// CommitMessage implements diffscope.Explainer.
func (e *Explainer) CommitMessage(ctx context.Context, analysis *diffscope.DiffAnalysis) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(CommitPrompt(analysis)), nil)
	if err != nil {
		return "", fmt.Errorf("generate commit message: %w", err)
	}
	msg := strings.TrimSpace(resp.Text())
	if msg == "" {
		return "", errors.New("model returned an empty commit message")
	}
	return msg, nil
}
