package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	lines, err := deps.Store.Lines(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if err := fs.WriteLines(c.File, lines); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", c.File, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d lines to %s\n", len(lines), c.File)
	return nil
}
