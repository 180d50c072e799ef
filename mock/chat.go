package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var (
	_ marketway.Router           = (*Router)(nil)
	_ marketway.KeywordExtractor = (*KeywordExtractor)(nil)
	_ marketway.Narrator         = (*Narrator)(nil)
	_ marketway.InfoSearcher     = (*InfoSearcher)(nil)
	_ marketway.Assistant        = (*Assistant)(nil)
)

// Router is a mock implementation of marketway.Router.
type Router struct {
	RouteFn func(ctx context.Context, message string) (*marketway.Intent, error)
}

func (r *Router) Route(ctx context.Context, message string) (*marketway.Intent, error) {
	return r.RouteFn(ctx, message)
}

// KeywordExtractor is a mock implementation of marketway.KeywordExtractor.
type KeywordExtractor struct {
	ExtractKeywordFn func(ctx context.Context, query string) (string, error)
}

func (e *KeywordExtractor) ExtractKeyword(ctx context.Context, query string) (string, error) {
	return e.ExtractKeywordFn(ctx, query)
}

// Narrator is a mock implementation of marketway.Narrator.
type Narrator struct {
	NarrateFn func(ctx context.Context, n *marketway.Narration) (string, error)
}

func (n *Narrator) Narrate(ctx context.Context, narration *marketway.Narration) (string, error) {
	return n.NarrateFn(ctx, narration)
}

// InfoSearcher is a mock implementation of marketway.InfoSearcher.
type InfoSearcher struct {
	SearchFn func(ctx context.Context, topic string) (string, error)
}

func (s *InfoSearcher) Search(ctx context.Context, topic string) (string, error) {
	return s.SearchFn(ctx, topic)
}

// Assistant is a mock implementation of marketway.Assistant.
type Assistant struct {
	ChatFn func(ctx context.Context, message string) (*marketway.Reply, error)
}

func (a *Assistant) Chat(ctx context.Context, message string) (*marketway.Reply, error) {
	return a.ChatFn(ctx, message)
}
