// Package slog provides logging decorators for marketway services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/marketway"
)

// Ensure the catalog decorators implement their interfaces.
var (
	_ marketway.Locator   = (*LoggingLocator)(nil)
	_ marketway.Navigator = (*LoggingNavigator)(nil)
	_ marketway.Reloader  = (*LoggingReloader)(nil)
)

// LoggingLocator wraps a Locator with debug logging.
type LoggingLocator struct {
	next   marketway.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next marketway.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the lookup.
func (l *LoggingLocator) Locate(ctx context.Context, keyword string, mode marketway.MatchMode) (results []*marketway.LocateResult, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("locate",
			"keyword", keyword,
			"mode", mode,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx, keyword, mode)
}

// LoggingNavigator wraps a Navigator with debug logging.
type LoggingNavigator struct {
	next   marketway.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next marketway.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Navigate delegates to the wrapped navigator and logs the request.
func (n *LoggingNavigator) Navigate(ctx context.Context, name string) (d *marketway.Directions, err error) {
	defer func(begin time.Time) {
		n.logger.Debug("navigate",
			"name", name,
			"steps", stepCount(d),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Navigate(ctx, name)
}

// NavigateToLine delegates to the wrapped navigator and logs the request.
func (n *LoggingNavigator) NavigateToLine(ctx context.Context, id string) (d *marketway.Directions, err error) {
	defer func(begin time.Time) {
		n.logger.Debug("navigate",
			"id", id,
			"steps", stepCount(d),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.NavigateToLine(ctx, id)
}

func stepCount(d *marketway.Directions) int {
	if d == nil {
		return 0
	}
	return len(d.Steps)
}

// LoggingReloader wraps a Reloader and logs every rebuild together with the
// data-integrity violations found while building the index.
type LoggingReloader struct {
	next   marketway.Reloader
	logger *slog.Logger
}

// NewLoggingReloader creates a new LoggingReloader.
func NewLoggingReloader(next marketway.Reloader, logger *slog.Logger) *LoggingReloader {
	return &LoggingReloader{next: next, logger: logger}
}

// Reload delegates to the wrapped reloader and logs the outcome.
func (r *LoggingReloader) Reload(ctx context.Context) (idx *marketway.Index, err error) {
	begin := time.Now()
	idx, err = r.next.Reload(ctx)

	if err != nil {
		r.logger.Warn("catalog reload failed, keeping previous catalog",
			"lines", idxLen(idx),
			"duration", time.Since(begin),
			"err", marketway.ErrorMessage(err),
		)
		return idx, err
	}

	violations := idx.Violations()
	for _, v := range violations {
		r.logger.Warn("catalog violation",
			"code", marketway.ErrorCode(v),
			"detail", marketway.ErrorMessage(v),
		)
	}
	r.logger.Info("catalog reload",
		"lines", idx.Len(),
		"aisles", len(idx.Aisles()),
		"violations", len(violations),
		"duration", time.Since(begin),
	)
	return idx, nil
}

func idxLen(idx *marketway.Index) int {
	if idx == nil {
		return 0
	}
	return idx.Len()
}
