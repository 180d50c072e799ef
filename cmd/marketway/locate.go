package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
)

// Run executes the locate command.
func (c *LocateCmd) Run(deps *Dependencies) error {
	mode := marketway.MatchFirst
	if c.All {
		mode = marketway.MatchAll
	}

	results, err := deps.Locator.Locate(deps.Ctx, c.Keyword, mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No line sells %q.\n", c.Keyword)
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  aisle %d, line %d  (%s: %s)\n", r.Name, r.Aisle, r.Order, r.MatchType, r.MatchedTerm)
	}
	return nil
}
