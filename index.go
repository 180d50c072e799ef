package marketway

import (
	"cmp"
	"slices"
	"strings"
)

// Index is an immutable view of the market layout. Lines are grouped by
// aisle and ordered by position so lookups by id, name and aisle do not
// scan the catalog.
//
// An Index is never modified after NewIndex returns; it is safe for
// concurrent use without locking. Lines returned by its methods must be
// treated as read-only.
type Index struct {
	entries    []entry // aisle ascending, then order ascending
	aisles     []int
	byAisle    map[int][]*Line
	byID       map[string]*Line
	byName     map[string]*Line
	violations []error
}

// entry caches the lower-cased forms used by the locator.
type entry struct {
	line  *Line
	name  string
	items []string
}

// NewIndex builds an index from lines.
//
// Lines that fail validation or reuse an existing ID are excluded. Lines
// sharing an order within an aisle are all kept; their relative position
// follows input order. Each of these findings is recorded and reported by
// Violations.
func NewIndex(lines []*Line) *Index {
	idx := &Index{
		byAisle: make(map[int][]*Line),
		byID:    make(map[string]*Line, len(lines)),
		byName:  make(map[string]*Line, len(lines)),
	}

	for _, in := range lines {
		if in == nil {
			continue
		}
		if err := in.Validate(); err != nil {
			idx.violations = append(idx.violations, err)
			continue
		}
		if _, ok := idx.byID[in.ID]; ok {
			idx.violations = append(idx.violations,
				Errorf(ECONFLICT, "duplicate line ID %q: later record %q ignored", in.ID, in.Name))
			continue
		}

		l := in.clone()
		idx.byID[l.ID] = l
		idx.byAisle[l.Aisle] = append(idx.byAisle[l.Aisle], l)

		key := strings.ToLower(l.Name)
		if prev, ok := idx.byName[key]; ok {
			idx.violations = append(idx.violations,
				Errorf(ECONFLICT, "duplicate line name %q: lines %q and %q", l.Name, prev.ID, l.ID))
			continue
		}
		idx.byName[key] = l
	}

	for aisle := range idx.byAisle {
		idx.aisles = append(idx.aisles, aisle)
	}
	slices.Sort(idx.aisles)

	for _, aisle := range idx.aisles {
		group := idx.byAisle[aisle]
		slices.SortStableFunc(group, func(a, b *Line) int {
			return cmp.Compare(a.Order, b.Order)
		})
		for i, l := range group {
			if i > 0 && group[i-1].Order == l.Order {
				idx.violations = append(idx.violations,
					Errorf(ECONFLICT, "aisle %d: lines %q and %q share order %d", aisle, group[i-1].ID, l.ID, l.Order))
			}
			idx.entries = append(idx.entries, newEntry(l))
		}
	}

	return idx
}

func newEntry(l *Line) entry {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = strings.ToLower(item)
	}
	return entry{line: l, name: strings.ToLower(l.Name), items: items}
}

// ByID returns the line with the given ID.
// Returns ENOTFOUND if no such line exists.
func (idx *Index) ByID(id string) (*Line, error) {
	if l, ok := idx.byID[id]; ok {
		return l, nil
	}
	return nil, Errorf(ENOTFOUND, "line %q not found", id)
}

// ByName returns the line whose name matches, ignoring case.
// Returns ENOTFOUND if no such line exists.
func (idx *Index) ByName(name string) (*Line, error) {
	if l, ok := idx.byName[strings.ToLower(name)]; ok {
		return l, nil
	}
	return nil, Errorf(ENOTFOUND, "line %q not found", name)
}

// LinesInAisle returns the lines of an aisle in walking order.
// The returned slice is a fresh copy and may be enumerated any number of
// times. An unknown aisle yields an empty slice.
func (idx *Index) LinesInAisle(aisle int) []*Line {
	group := idx.byAisle[aisle]
	if len(group) == 0 {
		return []*Line{}
	}
	return slices.Clone(group)
}

// Lines returns every line, aisle by aisle in ascending order.
func (idx *Index) Lines() []*Line {
	lines := make([]*Line, len(idx.entries))
	for i, e := range idx.entries {
		lines[i] = e.line
	}
	return lines
}

// Aisles returns the aisle numbers present in the index, ascending.
func (idx *Index) Aisles() []int {
	return slices.Clone(idx.aisles)
}

// Len returns the number of indexed lines.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Violations returns the data-integrity problems found while building the
// index. Duplicate orders and names are reported as ECONFLICT; rejected
// records as EINVALID or ECONFLICT.
func (idx *Index) Violations() []error {
	return slices.Clone(idx.violations)
}

// precedingInAisle returns the lines placed before target in its aisle.
func (idx *Index) precedingInAisle(target *Line) []*Line {
	group := idx.byAisle[target.Aisle]
	for i, l := range group {
		if l.ID == target.ID {
			return group[:i]
		}
	}

	// Target is not part of this index; fall back to strictly lower orders.
	var preceding []*Line
	for _, l := range group {
		if l.Order < target.Order {
			preceding = append(preceding, l)
		}
	}
	return preceding
}
