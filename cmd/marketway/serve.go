package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/fs"
	"github.com/fwojciec/marketway/gin"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if c.Watch && deps.WatchPath == "" {
		err := marketway.Errorf(marketway.EINVALID, "--watch requires the file catalog source")
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	s := gin.NewServer(logger)
	s.Locator = deps.Locator
	s.Navigator = deps.Navigator
	s.Reloader = deps.Reloader
	s.Assistant = deps.Assistant
	s.Lines = deps.Lines
	s.Gatherer = deps.Gatherer

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return s.Run(ctx, ln)
	})

	if c.Watch {
		w := fs.NewWatcher(deps.WatchPath, func(ctx context.Context) error {
			_, err := deps.Reloader.Reload(ctx)
			return err
		}, fs.WithErrorHandler(func(err error) {
			logger.Warn("catalog watch", "path", deps.WatchPath, "err", marketway.ErrorMessage(err))
		}))
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	logger.Info("listening", "addr", ln.Addr().String(), "watch", c.Watch)
	return g.Wait()
}
