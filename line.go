package marketway

import (
	"context"
	"slices"
)

// Line represents a section of the market selling goods.
type Line struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Aisle int      `json:"aisle"`
	Order int      `json:"order"` // 1-based position within the aisle
	Items []string `json:"items"`
}

// Validate returns an error if the line contains invalid fields.
func (l *Line) Validate() error {
	if l.ID == "" {
		return Errorf(EINVALID, "line ID required")
	}
	if l.Name == "" {
		return Errorf(EINVALID, "line name required")
	}
	if l.Aisle < 1 {
		return Errorf(EINVALID, "line %q: aisle must be positive, got %d", l.ID, l.Aisle)
	}
	if l.Order < 1 {
		return Errorf(EINVALID, "line %q: order must be positive, got %d", l.ID, l.Order)
	}
	return nil
}

// clone returns a deep copy so an index never shares memory with its input.
func (l *Line) clone() *Line {
	c := *l
	c.Items = slices.Clone(l.Items)
	if c.Items == nil {
		c.Items = []string{}
	}
	return &c
}

// LineSource supplies the full set of line records for a catalog build.
// Implementations return EUNAVAILABLE when the data cannot be read.
type LineSource interface {
	Lines(ctx context.Context) ([]*Line, error)
}

// LineService represents a persisted line catalog.
type LineService interface {
	LineSource

	// ReplaceLines atomically replaces the entire stored catalog.
	ReplaceLines(ctx context.Context, lines []*Line) error

	// FindLineByID retrieves a line by ID.
	// Returns ENOTFOUND if the line does not exist.
	FindLineByID(ctx context.Context, id string) (*Line, error)

	// FindLines retrieves lines matching the filter, ordered by aisle then order.
	FindLines(ctx context.Context, filter LineFilter) ([]*Line, error)
}

// LineFilter represents a filter for FindLines.
type LineFilter struct {
	Aisle *int    `json:"aisle"`
	Name  *string `json:"name"` // case-insensitive exact match

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
