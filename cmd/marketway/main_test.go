package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/marketway/cmd/marketway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layout = `{
	"l1": {"line_name": "Mothers Line", "aisle": 1, "order": 1, "items_sold": ["bags", "perfumes"]},
	"l2": {"line_name": "Godly Line", "aisle": 1, "order": 2, "items_sold": ["shoes", "dresses"]},
	"l4": {"line_name": "Pharmacy Line", "aisle": 2, "order": 1, "items_sold": ["drugs"]}
}`

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.Getenv = func(string) string { return "" }
	return m
}

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines.json")
	require.NoError(t, os.WriteFile(path, []byte(layout), 0644))
	return path
}

func run(t *testing.T, m *main.Main, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newTestMain(t), "--help")

	require.NoError(t, err)
	for _, cmd := range commands {
		assert.Contains(t, stdout, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgsShowsHelpAndFails(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newTestMain(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	assert.Contains(t, stdout, "locate")
}

func TestMain_Run_LocateFromFile(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newTestMain(t), "--data", writeLayout(t), "locate", "perfumes")

	require.NoError(t, err)
	assert.Equal(t, "Mothers Line  aisle 1, line 1  (item: perfumes)\n", stdout)
}

func TestMain_Run_DirectionsFromFile(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newTestMain(t), "--data", writeLayout(t), "directions", "Pharmacy Line")

	require.NoError(t, err)
	assert.Equal(t, "Walk to the FIRST line on your left.\n", stdout)
}

func TestMain_Run_MissingFileLeavesCatalogEmpty(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := run(t, newTestMain(t), "--data", filepath.Join(t.TempDir(), "missing.json"), "locate", "shoes")

	require.NoError(t, err)
	assert.Equal(t, "No line sells \"shoes\".\n", stdout)
	assert.Contains(t, stderr, "catalog reload failed")
}

func TestMain_Run_ChatWithoutAPIKeysUsesKeywordSearch(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newTestMain(t), "--data", writeLayout(t), "chat", "shoes")

	require.NoError(t, err)
	assert.Equal(t, "Walk past Mothers Line. Walk to the SECOND line on your right.\n", stdout)
}

func TestMain_Run_ImportThenServeFromDatabase(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	data := writeLayout(t)

	// Given a catalog imported into the database
	stdout, _, err := run(t, m, "import", data)
	require.NoError(t, err)
	assert.Equal(t, "Imported 3 lines (3 added, 0 changed, 0 unchanged, 0 removed)\n", stdout)

	// When importing the same file again
	stdout, _, err = run(t, m, "import", data)
	require.NoError(t, err)
	assert.Equal(t, "Imported 3 lines (0 added, 0 changed, 3 unchanged, 0 removed)\n", stdout)

	// Then lookups against the database source see the lines
	stdout, _, err = run(t, m, "--source", "db", "aisle", "1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1. Mothers Line: bags, perfumes")
	assert.Contains(t, stdout, "2. Godly Line: shoes, dresses")

	// And the catalog exports back to a file
	out := filepath.Join(t.TempDir(), "export.yaml")
	stdout, _, err = run(t, m, "export", out)
	require.NoError(t, err)
	assert.Equal(t, "Exported 3 lines to "+out+"\n", stdout)
	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestMain_Run_DBFlagOverridesDefault(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	dbPath := filepath.Join(t.TempDir(), "other.db")

	_, _, err := run(t, m, "--db", dbPath, "import", writeLayout(t))

	require.NoError(t, err)
	assert.Equal(t, dbPath, m.DBPath)
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}
