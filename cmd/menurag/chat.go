package main

import (
	"bufio"
	"fmt"
	"strings"
)

// Run executes the chat command. Each line read from stdin is one question;
// "exit" or "quit" ends the session, as does end of input.
func (c *ChatCmd) Run(deps *Dependencies) error {
	bot, _, err := deps.newChatbot(c.TopK)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "Restaurant chatbot ready. Type 'exit' or 'quit' to leave.")
	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(deps.Stdout, "Goodbye!")
			return nil
		}

		ctx, cancel := deps.withTimeout()
		answer, err := bot.Ask(ctx, question)
		cancel()
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Bot: %s\n", answer)
	}
}
