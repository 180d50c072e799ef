package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Story: Loading a Catalog File
// The market layout is kept in a JSON or YAML file next to the service

func TestLineSource_ReadsKeyedLayoutInFileOrder(t *testing.T) {
	t.Parallel()

	// Given a keyed catalog with the legacy field names
	path := writeFile(t, "lines.json", `{
		"l2": {"line_name": "Godly Line", "aisle": 1, "order": 2, "items_sold": ["shoes", "dresses"]},
		"l1": {"line_name": "Mothers Line", "aisle": 1, "order": 1, "items_sold": ["bags"]}
	}`)

	// When I read the lines
	lines, err := fs.NewLineSource(path).Lines(context.Background())

	// Then records come back in file order with IDs taken from the keys
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, &marketway.Line{
		ID: "l2", Name: "Godly Line", Aisle: 1, Order: 2, Items: []string{"shoes", "dresses"},
	}, lines[0])
	assert.Equal(t, "l1", lines[1].ID)
	assert.Equal(t, "Mothers Line", lines[1].Name)
}

func TestLineSource_ReadsListLayout(t *testing.T) {
	t.Parallel()

	// Given a list catalog
	path := writeFile(t, "lines.json", `[
		{"id": "l4", "name": "Pharmacy Line", "aisle": 2, "order": 1, "items": ["drugs"]}
	]`)

	// When I read the lines
	lines, err := fs.NewLineSource(path).Lines(context.Background())

	// Then the record is decoded as is
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, &marketway.Line{ID: "l4", Name: "Pharmacy Line", Aisle: 2, Order: 1, Items: []string{"drugs"}}, lines[0])
}

func TestLineSource_MissingOrderDecodesAsZero(t *testing.T) {
	t.Parallel()

	// Given a record without an order
	path := writeFile(t, "lines.json", `{"l9": {"line_name": "Stray Line", "aisle": 3}}`)

	// When I read and index the lines
	lines, err := fs.NewLineSource(path).Lines(context.Background())
	require.NoError(t, err)
	idx := marketway.NewIndex(lines)

	// Then the record is excluded as invalid rather than guessed
	assert.Equal(t, 0, idx.Len())
	require.Len(t, idx.Violations(), 1)
	assert.Equal(t, marketway.EINVALID, marketway.ErrorCode(idx.Violations()[0]))
}

func TestLineSource_ReadsYAML(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"lines.yaml", "lines.yml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// Given a YAML catalog in the keyed layout
			path := writeFile(t, name, `
l3:
  line_name: Magazine Line
  aisle: 1
  order: 3
  items_sold: [newspapers, books]
l1:
  line_name: Mothers Line
  aisle: 1
  order: 1
`)

			// When I read the lines
			lines, err := fs.NewLineSource(path).Lines(context.Background())

			// Then key order is preserved
			require.NoError(t, err)
			require.Len(t, lines, 2)
			assert.Equal(t, "l3", lines[0].ID)
			assert.Equal(t, []string{"newspapers", "books"}, lines[0].Items)
			assert.Equal(t, "l1", lines[1].ID)
		})
	}
}

func TestLineSource_UnavailableData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
	}{
		{name: "missing file"},
		{name: "empty file", content: ptr("")},
		{name: "corrupt JSON", content: ptr(`{"l1": {"line_name": `)},
		{name: "scalar JSON", content: ptr(`42`)},
		{name: "trailing garbage", content: ptr(`[] {`)},
		{name: "trailing value after list", content: ptr(`[{"id": "l1", "name": "Mothers Line", "aisle": 1, "order": 1}] {"oops": 1}`)},
		{name: "trailing value after object", content: ptr(`{"l1": {"line_name": "Mothers Line", "aisle": 1, "order": 1}} 7`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "lines.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0644))
			}

			_, err := fs.NewLineSource(path).Lines(context.Background())

			require.Error(t, err)
			assert.Equal(t, marketway.EUNAVAILABLE, marketway.ErrorCode(err))
		})
	}
}

func TestDecodeLines_RejectsDataAfterCatalog(t *testing.T) {
	t.Parallel()

	// Given a complete catalog followed by a second JSON value
	data := []byte(`[{"id": "l1", "name": "Mothers Line", "aisle": 1, "order": 1}] {"oops": 1}`)

	// When the data is decoded
	lines, err := fs.DecodeLines(data, fs.FormatJSON)

	// Then the whole file is rejected
	require.Error(t, err)
	assert.Nil(t, lines)
}

func TestDecodeLines_AllowsTrailingWhitespace(t *testing.T) {
	t.Parallel()

	lines, err := fs.DecodeLines([]byte("[{\"id\": \"l1\", \"name\": \"Mothers Line\", \"aisle\": 1, \"order\": 1}]\n\n  "), fs.FormatJSON)

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "l1", lines[0].ID)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fs.FormatJSON, fs.FormatFromPath("lines.json"))
	assert.Equal(t, fs.FormatJSON, fs.FormatFromPath("lines"))
	assert.Equal(t, fs.FormatYAML, fs.FormatFromPath("LINES.YML"))
	assert.Equal(t, fs.FormatYAML, fs.FormatFromPath("a/b/lines.yaml"))
}

// Story: Exporting a Catalog File

func TestWriteLines_RoundTripsThroughLineSource(t *testing.T) {
	t.Parallel()

	lines := []*marketway.Line{
		{ID: "l1", Name: "Mothers Line", Aisle: 1, Order: 1, Items: []string{"bags", "perfumes"}},
		{ID: "l4", Name: "Pharmacy Line", Aisle: 2, Order: 1, Items: []string{"drugs"}},
	}

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// Given lines written to a nested path
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, fs.WriteLines(path, lines))

			// When I read them back
			got, err := fs.NewLineSource(path).Lines(context.Background())

			// Then nothing is lost
			require.NoError(t, err)
			assert.Equal(t, lines, got)

			// And no temp files are left behind
			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		})
	}
}

func TestWriteLines_ReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "lines.json", `[{"id": "old", "name": "Old Line", "aisle": 1, "order": 1}]`)

	require.NoError(t, fs.WriteLines(path, nil))

	got, err := fs.NewLineSource(path).Lines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func ptr[T any](v T) *T {
	return &v
}
