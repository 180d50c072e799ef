package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
)

// Run executes the directions command.
func (c *DirectionsCmd) Run(deps *Dependencies) error {
	var d *marketway.Directions
	var err error
	if c.ID {
		d, err = deps.Navigator.NavigateToLine(deps.Ctx, c.Name)
	} else {
		d, err = deps.Navigator.Navigate(deps.Ctx, c.Name)
	}
	if err != nil {
		if marketway.ErrorCode(err) == marketway.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: %s. Use 'marketway locate' to search by product.\n", marketway.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	for _, step := range d.Steps {
		fmt.Fprintln(deps.Stdout, step)
	}
	return nil
}
