// Package chat answers free-text shopper messages by combining intent
// routing, the catalog and optional prose and search collaborators.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
	"github.com/google/uuid"
)

// UnavailableInfo is the reply to info requests when no searcher is configured.
const UnavailableInfo = "Online search is unavailable right now."

// Ensure Handler implements marketway.Assistant at compile time.
var _ marketway.Assistant = (*Handler)(nil)

// Handler implements marketway.Assistant.
//
// Only the guide is required. Without a router every
// message is a product search; without an extractor the routed query is
// used as the keyword; without a narrator the synthesized steps are the
// reply.
type Handler struct {
	guide marketway.Guide

	router    marketway.Router
	extractor marketway.KeywordExtractor
	narrator  marketway.Narrator
	searcher  marketway.InfoSearcher

	newID func() string
}

// Option configures a Handler.
type Option func(*Handler)

// WithRouter sets the intent router.
func WithRouter(r marketway.Router) Option {
	return func(h *Handler) { h.router = r }
}

// WithKeywordExtractor sets the keyword extractor.
func WithKeywordExtractor(e marketway.KeywordExtractor) Option {
	return func(h *Handler) { h.extractor = e }
}

// WithNarrator sets the prose generator.
func WithNarrator(n marketway.Narrator) Option {
	return func(h *Handler) { h.narrator = n }
}

// WithInfoSearcher sets the online searcher for info requests.
func WithInfoSearcher(s marketway.InfoSearcher) Option {
	return func(h *Handler) { h.searcher = s }
}

// NewHandler creates a new Handler.
func NewHandler(guide marketway.Guide, opts ...Option) *Handler {
	h := &Handler{
		guide: guide,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Chat answers message.
func (h *Handler) Chat(ctx context.Context, message string) (*marketway.Reply, error) {
	intent := h.route(ctx, message)

	reply := &marketway.Reply{
		ID:     h.newID(),
		Query:  message,
		Action: intent.Action,
	}

	if intent.Action == marketway.ActionInfo {
		reply.Info = h.info(ctx, intent)
		return reply, nil
	}

	if err := h.search(ctx, intent, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (h *Handler) route(ctx context.Context, message string) *marketway.Intent {
	if strings.TrimSpace(message) == "" {
		return &marketway.Intent{Action: marketway.ActionInfo, Topic: "general", Message: message}
	}
	search := &marketway.Intent{Action: marketway.ActionSearch, Query: message, Message: message}
	if h.router == nil {
		return search
	}

	intent, err := h.router.Route(ctx, message)
	if err != nil || intent == nil {
		return search
	}
	if intent.Action != marketway.ActionInfo && intent.Action != marketway.ActionSearch {
		return search
	}
	return intent
}

func (h *Handler) search(ctx context.Context, intent *marketway.Intent, reply *marketway.Reply) error {
	query := intent.Query
	if strings.TrimSpace(query) == "" {
		query = intent.Message
	}

	keyword := query
	if h.extractor != nil {
		if kw, err := h.extractor.ExtractKeyword(ctx, query); err == nil && strings.TrimSpace(kw) != "" {
			keyword = kw
		}
	}

	g, err := h.guide.Guide(ctx, keyword)
	if err != nil {
		return err
	}
	if g == nil && keyword != query {
		// The extracted keyword can be a category the catalog doesn't use.
		if g, err = h.guide.Guide(ctx, query); err != nil {
			return err
		}
	}
	if g == nil {
		reply.Direction = fmt.Sprintf("Sorry, I couldn't find %q in the market.", keyword)
		return nil
	}

	reply.Name = g.Match.Name
	reply.Match = g.Match
	reply.Directions = g.Directions
	reply.Direction = h.narrate(ctx, g.Match, g.Directions)
	return nil
}

func (h *Handler) narrate(ctx context.Context, match *marketway.LocateResult, d *marketway.Directions) string {
	if h.narrator == nil {
		return d.String()
	}
	text, err := h.narrator.Narrate(ctx, &marketway.Narration{
		LineName:   match.Name,
		Interest:   match.MatchedTerm,
		Directions: d,
	})
	if err != nil || strings.TrimSpace(text) == "" {
		return d.String()
	}
	return text
}

func (h *Handler) info(ctx context.Context, intent *marketway.Intent) string {
	if h.searcher == nil {
		return UnavailableInfo
	}

	query := intent.Message
	if strings.TrimSpace(query) == "" {
		query = intent.Topic
	}
	answer, err := h.searcher.Search(ctx, query)
	if err != nil {
		if marketway.ErrorCode(err) == marketway.EUNAVAILABLE {
			return UnavailableInfo
		}
		return "Error performing online search: " + marketway.ErrorMessage(err)
	}
	return answer
}
