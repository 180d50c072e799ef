// Package gemini implements the chat collaborators on Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/marketway"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ContentGenerator generates model responses.
// *genai.Models satisfies it, so callers pass client.Models.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure the genai client satisfies ContentGenerator at compile time.
var _ ContentGenerator = (*genai.Models)(nil)

// Option configures a Gemini collaborator.
type Option func(*generator)

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(g *generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithLimiter throttles calls to the model. A limiter may be shared
// between collaborators to cap the overall request rate.
func WithLimiter(l *rate.Limiter) Option {
	return func(g *generator) {
		g.limiter = l
	}
}

// generator holds what every collaborator needs to call the model.
type generator struct {
	models  ContentGenerator
	model   string
	limiter *rate.Limiter
}

func newGenerator(models ContentGenerator, opts []Option) generator {
	g := generator{models: models, model: DefaultModel}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func (g *generator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g.models == nil {
		return "", marketway.Errorf(marketway.EUNAVAILABLE, "gemini client not configured")
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	result, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", marketway.Errorf(marketway.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

func systemInstruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}
