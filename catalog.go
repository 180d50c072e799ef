package marketway

import (
	"context"
	"sync/atomic"
)

// Reloader rebuilds a catalog from its source.
type Reloader interface {
	// Reload replaces the active index with one built from fresh data and
	// returns it. On failure the previous index stays active, is returned
	// alongside the error, and the error code is EUNAVAILABLE.
	Reload(ctx context.Context) (*Index, error)
}

// Ensure Catalog implements the service interfaces at compile time.
var (
	_ Locator   = (*Catalog)(nil)
	_ Navigator = (*Catalog)(nil)
	_ Reloader  = (*Catalog)(nil)
	_ Guide     = (*Catalog)(nil)
)

// Catalog owns the active Index and swaps it wholesale on rebuild.
//
// Readers take a snapshot with Index and keep using it for the length of a
// request; a concurrent Rebuild never changes a snapshot already handed out.
type Catalog struct {
	src LineSource
	idx atomic.Pointer[Index]
}

// NewCatalog creates a Catalog backed by src with an empty index.
// Call Reload to populate it.
func NewCatalog(src LineSource) *Catalog {
	c := &Catalog{src: src}
	c.idx.Store(NewIndex(nil))
	return c
}

// Index returns the active index snapshot.
func (c *Catalog) Index() *Index {
	return c.idx.Load()
}

// Rebuild builds a new index from lines and makes it active.
func (c *Catalog) Rebuild(lines []*Line) *Index {
	idx := NewIndex(lines)
	c.idx.Store(idx)
	return idx
}

// Reload reads all lines from the source and rebuilds the index.
func (c *Catalog) Reload(ctx context.Context) (*Index, error) {
	if c.src == nil {
		return c.Index(), Errorf(EUNAVAILABLE, "no line source configured")
	}

	lines, err := c.src.Lines(ctx)
	if err != nil {
		if ErrorCode(err) == EUNAVAILABLE {
			return c.Index(), err
		}
		return c.Index(), Errorf(EUNAVAILABLE, "line source: %v", err)
	}
	return c.Rebuild(lines), nil
}

// Locate matches keyword against the active index.
func (c *Catalog) Locate(ctx context.Context, keyword string, mode MatchMode) ([]*LocateResult, error) {
	if mode != MatchFirst && mode != MatchAll {
		return nil, Errorf(EINVALID, "unknown match mode %q", mode)
	}
	return Locate(c.Index(), keyword, mode), nil
}

// Guide locates keyword and builds directions to the first match from a
// single index snapshot.
func (c *Catalog) Guide(ctx context.Context, keyword string) (*Guidance, error) {
	return c.Index().Guide(keyword)
}

// Navigate returns directions to the line with the given name.
func (c *Catalog) Navigate(ctx context.Context, name string) (*Directions, error) {
	idx := c.Index()
	line, err := idx.ByName(name)
	if err != nil {
		return nil, err
	}
	return idx.DirectionsTo(line)
}

// NavigateToLine returns directions to the line with the given ID.
func (c *Catalog) NavigateToLine(ctx context.Context, id string) (*Directions, error) {
	idx := c.Index()
	line, err := idx.ByID(id)
	if err != nil {
		return nil, err
	}
	return idx.DirectionsTo(line)
}

// FindLineByID returns the line with the given ID from the active index.
func (c *Catalog) FindLineByID(ctx context.Context, id string) (*Line, error) {
	return c.Index().ByID(id)
}

// FindLinesInAisle returns the lines of an aisle in walking order.
// Returns EINVALID if aisle is not positive.
func (c *Catalog) FindLinesInAisle(ctx context.Context, aisle int) ([]*Line, error) {
	if aisle < 1 {
		return nil, Errorf(EINVALID, "aisle must be positive, got %d", aisle)
	}
	return c.Index().LinesInAisle(aisle), nil
}
