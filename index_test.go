package marketway_test

import (
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLines returns a small two-aisle market, deliberately out of order.
func testLines() []*marketway.Line {
	return []*marketway.Line{
		{ID: "l5", Name: "Family Line", Aisle: 2, Order: 2, Items: []string{"Rice", "Shoe polish"}},
		{ID: "l2", Name: "Godly Line", Aisle: 1, Order: 2, Items: []string{"shoes", "dresses", "roomdecoitems", "bags", "babystuff"}},
		{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1, Items: []string{"bags", "perfumes"}},
		{ID: "l4", Name: "Pharmacy Line", Aisle: 2, Order: 1, Items: []string{"drugs", "first aid"}},
		{ID: "l3", Name: "Magazine Line", Aisle: 1, Order: 3, Items: []string{"newspapers", "books"}},
	}
}

func lineIDs(lines []*marketway.Line) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
	}
	return ids
}

func TestNewIndex(t *testing.T) {
	t.Parallel()

	t.Run("orders lines by aisle then order", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex(testLines())

		assert.Equal(t, []string{"l1", "l2", "l3", "l4", "l5"}, lineIDs(idx.Lines()))
		assert.Equal(t, []int{1, 2}, idx.Aisles())
		assert.Equal(t, 5, idx.Len())
		assert.Empty(t, idx.Violations())
	})

	t.Run("lines in every aisle are strictly increasing in order", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex(testLines())

		for _, aisle := range idx.Aisles() {
			lines := idx.LinesInAisle(aisle)
			for i := 1; i < len(lines); i++ {
				assert.Less(t, lines[i-1].Order, lines[i].Order, "aisle %d", aisle)
			}
		}
	})

	t.Run("empty input builds empty index", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex(nil)

		assert.Equal(t, 0, idx.Len())
		assert.Empty(t, idx.Lines())
		assert.Empty(t, idx.Aisles())
	})

	t.Run("keeps duplicate orders in input order and reports them", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex([]*marketway.Line{
			{ID: "b", Name: "B Line", Aisle: 1, Order: 2},
			{ID: "a", Name: "A Line", Aisle: 1, Order: 1},
			{ID: "c", Name: "C Line", Aisle: 1, Order: 2},
		})

		assert.Equal(t, []string{"a", "b", "c"}, lineIDs(idx.LinesInAisle(1)))
		violations := idx.Violations()
		require.Len(t, violations, 1)
		assert.Equal(t, marketway.ECONFLICT, marketway.ErrorCode(violations[0]))
		assert.Contains(t, marketway.ErrorMessage(violations[0]), "share order 2")
	})

	t.Run("excludes invalid lines and reports them", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex([]*marketway.Line{
			{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1},
			{ID: "bad", Name: "No Aisle Line", Aisle: 0, Order: 1},
			nil,
		})

		assert.Equal(t, 1, idx.Len())
		violations := idx.Violations()
		require.Len(t, violations, 1)
		assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(violations[0]))
	})

	t.Run("keeps the first of duplicate IDs", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex([]*marketway.Line{
			{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1},
			{ID: "l1", Name: "Impostor Line", Aisle: 1, Order: 2},
		})

		line, err := idx.ByID("l1")
		require.NoError(t, err)
		assert.Equal(t, "Mothers Line", line.Name)
		require.Len(t, idx.Violations(), 1)
		assert.Equal(t, marketway.ECONFLICT, marketway.ErrorCode(idx.Violations()[0]))
	})

	t.Run("reports case-insensitive duplicate names", func(t *testing.T) {
		t.Parallel()

		idx := marketway.NewIndex([]*marketway.Line{
			{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1},
			{ID: "l9", Name: "MOTHERS LINE", Aisle: 2, Order: 1},
		})

		line, err := idx.ByName("mothers line")
		require.NoError(t, err)
		assert.Equal(t, "l1", line.ID)
		assert.Equal(t, 2, idx.Len())
		require.Len(t, idx.Violations(), 1)
	})

	t.Run("is not affected by later changes to its input", func(t *testing.T) {
		t.Parallel()

		lines := testLines()
		idx := marketway.NewIndex(lines)

		lines[1].Name = "Changed"
		lines[1].Items[0] = "changed"

		line, err := idx.ByID("l2")
		require.NoError(t, err)
		assert.Equal(t, "Godly Line", line.Name)
		assert.Equal(t, "shoes", line.Items[0])
	})
}

func TestIndex_ByID(t *testing.T) {
	t.Parallel()

	idx := marketway.NewIndex(testLines())

	t.Run("returns line when found", func(t *testing.T) {
		t.Parallel()

		line, err := idx.ByID("l4")
		require.NoError(t, err)
		assert.Equal(t, "Pharmacy Line", line.Name)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		_, err := idx.ByID("nope")
		require.Error(t, err)
		assert.Equal(t, marketway.ENOTFOUND, marketway.ErrorCode(err))
	})
}

func TestIndex_ByName(t *testing.T) {
	t.Parallel()

	idx := marketway.NewIndex(testLines())

	t.Run("matches ignoring case", func(t *testing.T) {
		t.Parallel()

		line, err := idx.ByName("gODLY line")
		require.NoError(t, err)
		assert.Equal(t, "l2", line.ID)
	})

	t.Run("requires exact match", func(t *testing.T) {
		t.Parallel()

		_, err := idx.ByName("Godly")
		require.Error(t, err)
		assert.Equal(t, marketway.ENOTFOUND, marketway.ErrorCode(err))
	})
}

func TestIndex_LinesInAisle(t *testing.T) {
	t.Parallel()

	idx := marketway.NewIndex(testLines())

	t.Run("returns aisle in walking order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"l4", "l5"}, lineIDs(idx.LinesInAisle(2)))
	})

	t.Run("can be enumerated repeatedly", func(t *testing.T) {
		t.Parallel()

		first := idx.LinesInAisle(1)
		first[0] = nil

		assert.Equal(t, []string{"l1", "l2", "l3"}, lineIDs(idx.LinesInAisle(1)))
	})

	t.Run("returns empty for unknown aisle", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, idx.LinesInAisle(7))
	})
}
