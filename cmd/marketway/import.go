package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/fs"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	lines, err := fs.NewLineSource(c.File).Lines(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	stats, err := deps.Store.ImportLines(deps.Ctx, lines)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d lines (%d added, %d changed, %d unchanged, %d removed)\n",
		stats.Total, stats.Added, stats.Changed, stats.Unchanged, stats.Removed)
	return nil
}
