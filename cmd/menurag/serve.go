package main

import (
	"fmt"
	"net"

	"github.com/fwojciec/menurag/chi"
	"github.com/fwojciec/menurag/rag"
)

// Run executes the serve command. It blocks until the command context is
// canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	bot, knowledge, err := deps.newChatbot(c.TopK)
	if err != nil {
		return err
	}

	server := chi.NewServer(bot, rag.NewRetriever(deps.Embedder, knowledge, deps.Logger), deps.Logger)
	server.BuildID = knowledge.BuildID

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving index %s on %s\n", knowledge.BuildID, ln.Addr())
	return server.Serve(deps.Ctx, ln)
}
