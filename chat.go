package marketway

import "context"

// IntentAction is what a chat message asks for.
type IntentAction string

// IntentAction constants.
const (
	ActionSearch IntentAction = "search"
	ActionInfo   IntentAction = "info"
)

// Intent is a classified chat message.
type Intent struct {
	Action  IntentAction `json:"action"`
	Query   string       `json:"query,omitempty"` // product keyword for searches
	Topic   string       `json:"topic,omitempty"` // subject of info requests
	Message string       `json:"message"`         // original user message
}

// Router classifies a chat message as a product search or an info request.
type Router interface {
	Route(ctx context.Context, message string) (*Intent, error)
}

// KeywordExtractor reduces a free-text query to a single product keyword.
type KeywordExtractor interface {
	ExtractKeyword(ctx context.Context, query string) (string, error)
}

// Narration is the input for turning directions into prose.
type Narration struct {
	LineName   string      `json:"lineName"`
	Interest   string      `json:"interest"` // what the shopper is looking for
	Directions *Directions `json:"directions"`
}

// Narrator renders directions as conversational prose.
type Narrator interface {
	Narrate(ctx context.Context, n *Narration) (string, error)
}

// InfoSearcher answers general questions about the market.
// Returns EUNAVAILABLE when the backing service is not configured.
type InfoSearcher interface {
	Search(ctx context.Context, topic string) (string, error)
}

// Reply is the answer to a chat message.
type Reply struct {
	ID     string       `json:"id"`
	Query  string       `json:"query"`
	Action IntentAction `json:"action"`

	// Search replies.
	Name       string        `json:"name,omitempty"`
	Direction  string        `json:"direction,omitempty"`
	Match      *LocateResult `json:"match,omitempty"`
	Directions *Directions   `json:"directions,omitempty"`

	// Info replies.
	Info string `json:"info,omitempty"`
}

// Assistant answers free-text chat messages about the market.
type Assistant interface {
	Chat(ctx context.Context, message string) (*Reply, error)
}
