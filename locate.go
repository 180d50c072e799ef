package marketway

import (
	"context"
	"strings"
)

// MatchMode selects how many lines a locate call returns.
type MatchMode string

// MatchMode constants.
const (
	MatchFirst MatchMode = "first"
	MatchAll   MatchMode = "all"
)

// ParseMatchMode converts a string into a MatchMode.
// An empty string selects MatchFirst.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchFirst:
		return MatchFirst, nil
	case MatchAll:
		return MatchAll, nil
	default:
		return "", Errorf(EINVALID, "unknown match mode %q: use %q or %q", s, MatchFirst, MatchAll)
	}
}

// MatchType reports which field of a line matched the keyword.
type MatchType string

// MatchType constants.
const (
	MatchLineName MatchType = "line_name"
	MatchItem     MatchType = "item"
)

// LocateResult is the outcome of matching a keyword to a line.
type LocateResult struct {
	LineID      string    `json:"lineId"`
	Name        string    `json:"name"`
	Aisle       int       `json:"aisle"`
	Order       int       `json:"order"`
	MatchType   MatchType `json:"matchType"`
	MatchedTerm string    `json:"matchedTerm"`
}

// Locator resolves a keyword to the lines that sell it.
type Locator interface {
	// Locate returns matching lines in aisle-then-order sequence.
	// No match is an empty result, not an error.
	// Returns EINVALID for an unknown mode.
	Locate(ctx context.Context, keyword string, mode MatchMode) ([]*LocateResult, error)
}

// Guidance is a located line together with the directions to it.
type Guidance struct {
	Match      *LocateResult `json:"match"`
	Directions *Directions   `json:"directions"`
}

// Guide resolves a keyword to its first matching line and the way there.
type Guide interface {
	// Guide returns nil Guidance and no error when nothing matches.
	Guide(ctx context.Context, keyword string) (*Guidance, error)
}

// Guide locates keyword in idx and builds directions to the first match.
// Both steps read idx only, so the result is consistent even if the catalog
// that handed out idx has since been rebuilt.
func (idx *Index) Guide(keyword string) (*Guidance, error) {
	results := Locate(idx, keyword, MatchFirst)
	if len(results) == 0 {
		return nil, nil
	}
	match := results[0]

	line, err := idx.ByID(match.LineID)
	if err != nil {
		return nil, err
	}
	d, err := idx.DirectionsTo(line)
	if err != nil {
		return nil, err
	}
	return &Guidance{Match: match, Directions: d}, nil
}

// NormalizeKeyword lower-cases and trims a keyword.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Locate scans idx for lines whose name or items contain keyword.
//
// A name match takes precedence over item matches and each line yields at
// most one result. In MatchFirst mode scanning stops at the first matching
// line and only the first matching item is reported; in MatchAll mode every
// matching line is returned and its matching items are joined with ", ".
// An empty keyword yields an empty result.
func Locate(idx *Index, keyword string, mode MatchMode) []*LocateResult {
	results := []*LocateResult{}

	kw := NormalizeKeyword(keyword)
	if kw == "" || idx == nil {
		return results
	}

	for _, e := range idx.entries {
		r := matchEntry(e, kw, mode)
		if r == nil {
			continue
		}
		results = append(results, r)
		if mode != MatchAll {
			break
		}
	}
	return results
}

func matchEntry(e entry, kw string, mode MatchMode) *LocateResult {
	if strings.Contains(e.name, kw) {
		return newLocateResult(e.line, MatchLineName, e.line.Name)
	}

	var matched []string
	for i, item := range e.items {
		if !strings.Contains(item, kw) {
			continue
		}
		matched = append(matched, e.line.Items[i])
		if mode != MatchAll {
			break
		}
	}
	if len(matched) == 0 {
		return nil
	}
	return newLocateResult(e.line, MatchItem, strings.Join(matched, ", "))
}

func newLocateResult(l *Line, typ MatchType, term string) *LocateResult {
	return &LocateResult{
		LineID:      l.ID,
		Name:        l.Name,
		Aisle:       l.Aisle,
		Order:       l.Order,
		MatchType:   typ,
		MatchedTerm: term,
	}
}
