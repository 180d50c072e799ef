package marketway

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Side is the side of the walker on which an aisle's lines appear.
type Side string

// Side constants.
const (
	SideRight Side = "right"
	SideLeft  Side = "left"
)

// SideForAisle returns the side on which lines of aisle appear.
//
// The entrance leads straight into aisle 1 with its lines on the right.
// Aisle 2 is reached by turning at the first line of aisle 1 and turning
// again; its lines are on the left. Aisles beyond 2 follow the same
// odd/even rule.
func SideForAisle(aisle int) Side {
	if aisle%2 == 1 {
		return SideRight
	}
	return SideLeft
}

var ordinals = [...]string{
	"FIRST", "SECOND", "THIRD", "FOURTH", "FIFTH",
	"SIXTH", "SEVENTH", "EIGHTH", "NINTH", "TENTH",
	"ELEVENTH", "TWELFTH", "THIRTEENTH", "FOURTEENTH", "FIFTEENTH",
	"SIXTEENTH", "SEVENTEENTH", "EIGHTEENTH", "NINETEENTH", "TWENTIETH",
}

// Ordinal returns the upper-case ordinal word for a positive position.
// Positions past twenty use numeric form, e.g. "21ST".
func Ordinal(n int) string {
	if n >= 1 && n <= len(ordinals) {
		return ordinals[n-1]
	}

	suffix := "TH"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "ST"
		case 2:
			suffix = "ND"
		case 3:
			suffix = "RD"
		}
	}
	return strconv.Itoa(n) + suffix
}

// Directions is a language-independent sequence of steps from the market
// entrance to a line.
type Directions struct {
	Aisle     int      `json:"aisle"`
	Order     int      `json:"order"`
	Side      Side     `json:"side"`
	Steps     []string `json:"steps"`
	Landmarks []string `json:"landmarks"` // lines walked past, in walking order
}

// String joins the steps into one sentence sequence.
func (d *Directions) String() string {
	return strings.Join(d.Steps, " ")
}

// Navigator produces directions to a line.
type Navigator interface {
	// Navigate returns directions to the line with the given name.
	// Returns ENOTFOUND if no line has that name.
	Navigate(ctx context.Context, name string) (*Directions, error)

	// NavigateToLine returns directions to the line with the given ID.
	// Returns ENOTFOUND if the line does not exist.
	NavigateToLine(ctx context.Context, id string) (*Directions, error)
}

// Synthesize builds the steps to the line at (aisle, order) given the names
// of the lines preceding it in that aisle, in walking order.
// Returns EINVALID if aisle or order is not positive.
func Synthesize(aisle, order int, preceding []string) (*Directions, error) {
	if aisle < 1 || order < 1 {
		return nil, Errorf(EINVALID, "malformed coordinate: aisle=%d order=%d", aisle, order)
	}

	side := SideForAisle(aisle)
	d := &Directions{
		Aisle:     aisle,
		Order:     order,
		Side:      side,
		Steps:     make([]string, 0, 2),
		Landmarks: []string{},
	}

	if order > 1 && len(preceding) > 0 {
		d.Landmarks = slices.Clone(preceding)
		d.Steps = append(d.Steps, "Walk past "+strings.Join(preceding, ", ")+".")
	}
	d.Steps = append(d.Steps, fmt.Sprintf("Walk to the %s line on your %s.", Ordinal(order), side))

	return d, nil
}

// DirectionsTo returns directions to line using the lines placed before it
// in its aisle as landmarks.
func (idx *Index) DirectionsTo(line *Line) (*Directions, error) {
	if line == nil {
		return nil, Errorf(EINVALID, "line required")
	}

	preceding := idx.precedingInAisle(line)
	names := make([]string, len(preceding))
	for i, l := range preceding {
		names[i] = l.Name
	}
	return Synthesize(line.Aisle, line.Order, names)
}
