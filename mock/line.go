package mock

import (
	"context"

	"github.com/fwojciec/marketway"
)

var (
	_ marketway.LineSource  = (*LineSource)(nil)
	_ marketway.LineService = (*LineService)(nil)
)

// LineSource is a mock implementation of marketway.LineSource.
type LineSource struct {
	LinesFn func(ctx context.Context) ([]*marketway.Line, error)
}

func (s *LineSource) Lines(ctx context.Context) ([]*marketway.Line, error) {
	return s.LinesFn(ctx)
}

// LineService is a mock implementation of marketway.LineService.
type LineService struct {
	LinesFn        func(ctx context.Context) ([]*marketway.Line, error)
	ReplaceLinesFn func(ctx context.Context, lines []*marketway.Line) error
	FindLineByIDFn func(ctx context.Context, id string) (*marketway.Line, error)
	FindLinesFn    func(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error)
}

func (s *LineService) Lines(ctx context.Context) ([]*marketway.Line, error) {
	return s.LinesFn(ctx)
}

func (s *LineService) ReplaceLines(ctx context.Context, lines []*marketway.Line) error {
	return s.ReplaceLinesFn(ctx, lines)
}

func (s *LineService) FindLineByID(ctx context.Context, id string) (*marketway.Line, error) {
	return s.FindLineByIDFn(ctx, id)
}

func (s *LineService) FindLines(ctx context.Context, filter marketway.LineFilter) ([]*marketway.Line, error) {
	return s.FindLinesFn(ctx, filter)
}
