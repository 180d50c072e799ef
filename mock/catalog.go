package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var (
	_ marketway.Locator   = (*Locator)(nil)
	_ marketway.Navigator = (*Navigator)(nil)
	_ marketway.Reloader  = (*Reloader)(nil)
	_ marketway.Guide     = (*Guide)(nil)
)

// Locator is a mock implementation of marketway.Locator.
type Locator struct {
	LocateFn func(ctx context.Context, keyword string, mode marketway.MatchMode) ([]*marketway.LocateResult, error)
}

func (l *Locator) Locate(ctx context.Context, keyword string, mode marketway.MatchMode) ([]*marketway.LocateResult, error) {
	return l.LocateFn(ctx, keyword, mode)
}

// Navigator is a mock implementation of marketway.Navigator.
type Navigator struct {
	NavigateFn       func(ctx context.Context, name string) (*marketway.Directions, error)
	NavigateToLineFn func(ctx context.Context, id string) (*marketway.Directions, error)
}

func (n *Navigator) Navigate(ctx context.Context, name string) (*marketway.Directions, error) {
	return n.NavigateFn(ctx, name)
}

func (n *Navigator) NavigateToLine(ctx context.Context, id string) (*marketway.Directions, error) {
	return n.NavigateToLineFn(ctx, id)
}

// Reloader is a mock implementation of marketway.Reloader.
type Reloader struct {
	ReloadFn func(ctx context.Context) (*marketway.Index, error)
}

func (r *Reloader) Reload(ctx context.Context) (*marketway.Index, error) {
	return r.ReloadFn(ctx)
}

// Guide is a mock implementation of marketway.Guide.
type Guide struct {
	GuideFn func(ctx context.Context, keyword string) (*marketway.Guidance, error)
}

func (g *Guide) Guide(ctx context.Context, keyword string) (*marketway.Guidance, error) {
	return g.GuideFn(ctx, keyword)
}
