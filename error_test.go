package marketway_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := marketway.Errorf(marketway.ENOTFOUND, "line %q not found", "test")

	assert.Equal(t, marketway.ENOTFOUND, marketway.ErrorCode(err))
	assert.Equal(t, "line \"test\" not found", marketway.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, marketway.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, marketway.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading: %w", marketway.Errorf(marketway.EUNAVAILABLE, "file missing"))

	assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
	assert.Equal(t, "file missing", marketway.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, marketway.EINTERNAL, marketway.ErrorCode(err))
	assert.Equal(t, "Internal error.", marketway.ErrorMessage(err))
}
