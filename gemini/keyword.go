package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// Ensure KeywordExtractor implements marketway.KeywordExtractor at compile time.
var _ marketway.KeywordExtractor = (*KeywordExtractor)(nil)

// KeywordExtractor reduces shopper queries to a product keyword using Gemini.
type KeywordExtractor struct {
	gen generator
}

// NewKeywordExtractor creates a new KeywordExtractor.
func NewKeywordExtractor(models ContentGenerator, opts ...Option) *KeywordExtractor {
	return &KeywordExtractor{gen: newGenerator(models, opts)}
}

// ExtractKeyword returns the product keyword in query.
func (e *KeywordExtractor) ExtractKeyword(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", marketway.Errorf(marketway.EINVALID, "query required")
	}

	text, err := e.gen.generate(ctx, BuildKeywordPrompt(query), BuildKeywordConfig())
	if err != nil {
		return "", err
	}
	return ParseKeyword(text, query), nil
}

// BuildKeywordConfig returns the GenerateContentConfig for keyword calls.
func BuildKeywordConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction("You extract product keywords from market shoppers' requests."),
		Temperature:       &temp,
	}
}

// BuildKeywordPrompt builds the extraction prompt for query.
func BuildKeywordPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("Extract the single most important product keyword from this query.\n")
	fmt.Fprintf(&sb, "Query: %q\n", query)
	sb.WriteString("Return only the keyword by category. If it is already a keyword, return it as is.\n")
	sb.WriteString(`Example: "I need a shoe" -> shoe` + "\n")
	sb.WriteString(`Example: "where can i get some drugs?" -> pharmacy` + "\n")
	sb.WriteString(`Example: "red dress" -> dress` + "\n")
	return sb.String()
}

// ParseKeyword normalizes a model response. Responses of three or more
// words are not keywords, so query is returned instead.
func ParseKeyword(response, query string) string {
	kw := strings.ToLower(strings.Trim(strings.TrimSpace(response), "\"'`."))
	n := len(strings.Fields(kw))
	if n == 0 || n >= 3 {
		return query
	}
	return kw
}
