package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
)

// Run executes the aisle command.
func (c *AisleCmd) Run(deps *Dependencies) error {
	lines, err := deps.Lines.FindLinesInAisle(deps.Ctx, c.Aisle)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if len(lines) == 0 {
		fmt.Fprintf(deps.Stdout, "Aisle %d has no lines.\n", c.Aisle)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Aisle %d (on your %s):\n", c.Aisle, marketway.SideForAisle(c.Aisle))
	for _, l := range lines {
		fmt.Fprintf(deps.Stdout, "  %d. %s: %s\n", l.Order, l.Name, strings.Join(l.Items, ", "))
	}
	return nil
}
