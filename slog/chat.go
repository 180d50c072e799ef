package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketway"
)

// Ensure the chat decorators implement their interfaces.
var (
	_ marketway.Router       = (*LoggingRouter)(nil)
	_ marketway.Narrator     = (*LoggingNarrator)(nil)
	_ marketway.InfoSearcher = (*LoggingInfoSearcher)(nil)
	_ marketway.Assistant    = (*LoggingAssistant)(nil)
)

// LoggingRouter wraps a Router with debug logging.
type LoggingRouter struct {
	next   marketway.Router
	logger *slog.Logger
}

// NewLoggingRouter creates a new LoggingRouter.
func NewLoggingRouter(next marketway.Router, logger *slog.Logger) *LoggingRouter {
	return &LoggingRouter{next: next, logger: logger}
}

// Route delegates to the wrapped router and logs the classified intent.
func (r *LoggingRouter) Route(ctx context.Context, message string) (intent *marketway.Intent, err error) {
	defer func(begin time.Time) {
		var action marketway.IntentAction
		if intent != nil {
			action = intent.Action
		}
		r.logger.Debug("route",
			"message", message,
			"action", action,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Route(ctx, message)
}

// LoggingNarrator wraps a Narrator with debug logging.
type LoggingNarrator struct {
	next   marketway.Narrator
	logger *slog.Logger
}

// NewLoggingNarrator creates a new LoggingNarrator.
func NewLoggingNarrator(next marketway.Narrator, logger *slog.Logger) *LoggingNarrator {
	return &LoggingNarrator{next: next, logger: logger}
}

// Narrate delegates to the wrapped narrator and logs the call.
func (n *LoggingNarrator) Narrate(ctx context.Context, narration *marketway.Narration) (text string, err error) {
	defer func(begin time.Time) {
		var line string
		if narration != nil {
			line = narration.LineName
		}
		n.logger.Debug("narrate",
			"line", line,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Narrate(ctx, narration)
}

// LoggingInfoSearcher wraps an InfoSearcher with debug logging.
type LoggingInfoSearcher struct {
	next   marketway.InfoSearcher
	logger *slog.Logger
}

// NewLoggingInfoSearcher creates a new LoggingInfoSearcher.
func NewLoggingInfoSearcher(next marketway.InfoSearcher, logger *slog.Logger) *LoggingInfoSearcher {
	return &LoggingInfoSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingInfoSearcher) Search(ctx context.Context, topic string) (answer string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("info search",
			"topic", topic,
			"chars", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, topic)
}

// LoggingAssistant wraps an Assistant and logs every chat exchange.
type LoggingAssistant struct {
	next   marketway.Assistant
	logger *slog.Logger
}

// NewLoggingAssistant creates a new LoggingAssistant.
func NewLoggingAssistant(next marketway.Assistant, logger *slog.Logger) *LoggingAssistant {
	return &LoggingAssistant{next: next, logger: logger}
}

// Chat delegates to the wrapped assistant and logs the reply.
func (a *LoggingAssistant) Chat(ctx context.Context, message string) (reply *marketway.Reply, err error) {
	defer func(begin time.Time) {
		attrs := []any{"message", message}
		if reply != nil {
			attrs = append(attrs, "id", reply.ID, "action", reply.Action, "line", reply.Name)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		a.logger.Info("chat", attrs...)
	}(time.Now())
	return a.next.Chat(ctx, message)
}
