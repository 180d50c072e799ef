package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	reply, err := deps.Assistant.Chat(deps.Ctx, c.Message)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if reply.Action == marketway.ActionInfo {
		fmt.Fprintln(deps.Stdout, reply.Info)
		return nil
	}
	fmt.Fprintln(deps.Stdout, reply.Direction)
	return nil
}
