package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/mock"
	mwslog "github.com/fwojciec/marketway/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingLocator_Locate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	want := []*marketway.LocateResult{{LineID: "l2", Name: "Godly Line", Aisle: 1, Order: 2}}
	inner := &mock.Locator{
		LocateFn: func(_ context.Context, keyword string, mode marketway.MatchMode) ([]*marketway.LocateResult, error) {
			assert.Equal(t, "shoes", keyword)
			assert.Equal(t, marketway.MatchAll, mode)
			return want, nil
		},
	}

	got, err := mwslog.NewLoggingLocator(inner, debugLogger(&buf)).Locate(context.Background(), "shoes", marketway.MatchAll)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	output := buf.String()
	assert.Contains(t, output, "msg=locate")
	assert.Contains(t, output, "keyword=shoes")
	assert.Contains(t, output, "mode=all")
	assert.Contains(t, output, "count=1")
	assert.Contains(t, output, "duration=")
}

func TestLoggingLocator_SilentAtInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Locator{
		LocateFn: func(context.Context, string, marketway.MatchMode) ([]*marketway.LocateResult, error) {
			return []*marketway.LocateResult{}, nil
		},
	}

	_, err := mwslog.NewLoggingLocator(inner, logger).Locate(context.Background(), "shoes", marketway.MatchFirst)

	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestLoggingNavigator(t *testing.T) {
	t.Parallel()

	t.Run("logs step count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Navigator{
			NavigateFn: func(context.Context, string) (*marketway.Directions, error) {
				return marketway.Synthesize(1, 2, []string{"Mothers Line"})
			},
		}

		_, err := mwslog.NewLoggingNavigator(inner, debugLogger(&buf)).Navigate(context.Background(), "Godly Line")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), `name="Godly Line"`)
		assert.Contains(t, buf.String(), "steps=2")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Navigator{
			NavigateToLineFn: func(context.Context, string) (*marketway.Directions, error) {
				return nil, marketway.Errorf(marketway.ENOTFOUND, "line %q not found", "x")
			},
		}

		_, err := mwslog.NewLoggingNavigator(inner, debugLogger(&buf)).NavigateToLine(context.Background(), "x")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "id=x")
		assert.Contains(t, buf.String(), "steps=0")
		assert.Contains(t, buf.String(), "code=not_found")
	})
}

func TestLoggingReloader_Reload(t *testing.T) {
	t.Parallel()

	t.Run("logs summary and each violation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		idx := marketway.NewIndex([]*marketway.Line{
			{ID: "a", Name: "A Line", Aisle: 1, Order: 1},
			{ID: "b", Name: "B Line", Aisle: 1, Order: 1},
			{ID: "c", Name: "C Line", Aisle: 0, Order: 1},
		})
		inner := &mock.Reloader{
			ReloadFn: func(context.Context) (*marketway.Index, error) { return idx, nil },
		}

		got, err := mwslog.NewLoggingReloader(inner, debugLogger(&buf)).Reload(context.Background())

		require.NoError(t, err)
		assert.Same(t, idx, got)
		output := buf.String()
		assert.Equal(t, 2, strings.Count(output, "catalog violation"))
		assert.Contains(t, output, "code=conflict")
		assert.Contains(t, output, "code=invalid")
		assert.Contains(t, output, "msg=\"catalog reload\" lines=2 aisles=1 violations=2")
	})

	t.Run("logs failure and passes through previous index", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		prev := marketway.NewIndex([]*marketway.Line{{ID: "a", Name: "A Line", Aisle: 1, Order: 1}})
		inner := &mock.Reloader{
			ReloadFn: func(context.Context) (*marketway.Index, error) {
				return prev, marketway.Errorf(marketway.EUNAVAILABLE, "catalog file missing")
			},
		}

		got, err := mwslog.NewLoggingReloader(inner, debugLogger(&buf)).Reload(context.Background())

		require.Error(t, err)
		assert.Same(t, prev, got)
		assert.Contains(t, buf.String(), "level=WARN msg=\"catalog reload failed, keeping previous catalog\"")
		assert.NotContains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "lines=1")
		assert.Contains(t, buf.String(), `err="catalog file missing"`)
	})

	t.Run("tolerates nil index on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Reloader{
			ReloadFn: func(context.Context) (*marketway.Index, error) { return nil, errors.New("boom") },
		}

		_, err := mwslog.NewLoggingReloader(inner, debugLogger(&buf)).Reload(context.Background())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "lines=0")
	})
}
