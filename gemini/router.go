package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"google.golang.org/genai"
)

// Ensure Router implements marketway.Router at compile time.
var _ marketway.Router = (*Router)(nil)

// Router classifies chat messages using Gemini.
type Router struct {
	gen generator
}

// NewRouter creates a new Router.
func NewRouter(models ContentGenerator, opts ...Option) *Router {
	return &Router{gen: newGenerator(models, opts)}
}

// Route classifies message. Blank messages are info requests about the
// market in general and never reach the model. A response that cannot be
// parsed is treated as a search for the whole message.
func (r *Router) Route(ctx context.Context, message string) (*marketway.Intent, error) {
	if strings.TrimSpace(message) == "" {
		return &marketway.Intent{Action: marketway.ActionInfo, Topic: "general", Message: message}, nil
	}

	text, err := r.gen.generate(ctx, BuildRouterPrompt(message), BuildRouterConfig())
	if err != nil {
		return nil, err
	}
	return ParseRoute(text, message), nil
}

// BuildRouterConfig returns the GenerateContentConfig for routing calls.
func BuildRouterConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction(
			"You classify messages sent to the assistant of an open-air market. " +
				"Shoppers either look for a product or ask about the market itself.",
		),
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildRouterPrompt builds the classification prompt for message.
func BuildRouterPrompt(message string) string {
	var sb strings.Builder
	sb.WriteString("Decide whether the user wants to:\n")
	sb.WriteString("1. SEARCH for a product or item in the market\n")
	sb.WriteString("2. get INFO about the market (history, general questions)\n\n")
	fmt.Fprintf(&sb, "User message: %q\n\n", message)
	sb.WriteString("Respond with only a JSON object of the form:\n")
	sb.WriteString(`{"action": "search" or "info", "data": "product keyword for search, or topic for info"}` + "\n\n")
	sb.WriteString("Examples:\n")
	sb.WriteString(`- "Where can I find shoes?" -> {"action": "search", "data": "shoes"}` + "\n")
	sb.WriteString(`- "I need pharmacy" -> {"action": "search", "data": "pharmacy"}` + "\n")
	sb.WriteString(`- "Tell me about this market" -> {"action": "info", "data": "market history"}` + "\n")
	sb.WriteString(`- "What is MarketWay?" -> {"action": "info", "data": "general info"}` + "\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- asking where to find, needing or looking for a product is a search\n")
	sb.WriteString("- asking about the history of the market or what it is is info\n")
	sb.WriteString("- for a search, data is only the key product name\n")
	return sb.String()
}

type routeResponse struct {
	Action string `json:"action"`
	Data   string `json:"data"`
}

// ParseRoute converts a model response into an Intent.
// Markdown code fences around the JSON are tolerated.
func ParseRoute(response, message string) *marketway.Intent {
	var resp routeResponse
	if err := json.Unmarshal([]byte(stripFences(response)), &resp); err != nil {
		return &marketway.Intent{Action: marketway.ActionSearch, Query: message, Message: message}
	}

	data := strings.TrimSpace(resp.Data)
	if data == "" {
		data = message
	}
	if strings.EqualFold(strings.TrimSpace(resp.Action), string(marketway.ActionInfo)) {
		return &marketway.Intent{Action: marketway.ActionInfo, Topic: data, Message: message}
	}
	return &marketway.Intent{Action: marketway.ActionSearch, Query: data, Message: message}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
