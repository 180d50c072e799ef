package marketway_test

import (
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    marketway.Line
		wantErr string
	}{
		{"valid", marketway.Line{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1}, ""},
		{"missing id", marketway.Line{Name: "Mothers Line", Aisle: 1, Order: 1}, "line ID required"},
		{"missing name", marketway.Line{ID: "l1", Aisle: 1, Order: 1}, "line name required"},
		{"zero aisle", marketway.Line{ID: "l1", Name: "x", Aisle: 0, Order: 1}, "aisle must be positive"},
		{"negative order", marketway.Line{ID: "l1", Name: "x", Aisle: 1, Order: -2}, "order must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.line.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(err))
			assert.Contains(t, marketway.ErrorMessage(err), tt.wantErr)
		})
	}
}
