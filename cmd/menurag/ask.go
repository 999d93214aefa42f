package main

import (
	"fmt"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	bot, _, err := deps.newChatbot(c.TopK)
	if err != nil {
		return err
	}

	ctx, cancel := deps.withTimeout()
	defer cancel()

	answer, err := bot.Ask(ctx, c.Question)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
