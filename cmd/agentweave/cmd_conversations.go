package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/vietanhdev/agentweave/src/history"
)

// ConversationsCmd manages local and server-side conversation state
type ConversationsCmd struct {
	List   ConversationsListCmd   `cmd:"" help:"List locally recorded conversations"`
	Show   ConversationsShowCmd   `cmd:"" help:"Show a conversation's turns"`
	Reset  ConversationsResetCmd  `cmd:"" help:"Reset a conversation on the server"`
	Delete ConversationsDeleteCmd `cmd:"" help:"Delete a conversation from local history"`
}

// ConversationsListCmd lists locally recorded conversations
type ConversationsListCmd struct {
	Format string `short:"f" enum:"table,json" default:"table" help:"Output format"`
}

func (c *ConversationsListCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	db, err := a.history()
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("history is disabled")
	}

	convs, err := history.ListConversations(context.Background(), db.DB())
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(convs)
	default:
		return printConversationsTable(convs)
	}
}

// ConversationsShowCmd shows a conversation's turns
type ConversationsShowCmd struct {
	ID string `arg:"" help:"Conversation ID"`
}

func (c *ConversationsShowCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	db, err := a.history()
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("history is disabled")
	}

	turns, err := history.GetTurns(context.Background(), db.DB(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if len(turns) == 0 {
		return fmt.Errorf("no local history for conversation %s", c.ID)
	}

	for _, turn := range turns {
		fmt.Printf("> %s\n%s\n\n", turn.Query, turn.Response)
	}
	return nil
}

// ConversationsResetCmd resets a conversation's server-side state
type ConversationsResetCmd struct {
	ID string `arg:"" help:"Conversation ID"`
}

func (c *ConversationsResetCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	return a.store.ResetConversation(context.Background(), c.ID)
}

// ConversationsDeleteCmd deletes a conversation from local history
type ConversationsDeleteCmd struct {
	ID string `arg:"" help:"Conversation ID"`
}

func (c *ConversationsDeleteCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	db, err := a.history()
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("history is disabled")
	}

	if err := history.DeleteConversation(context.Background(), db.DB(), c.ID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	fmt.Printf("Deleted conversation %s from local history\n", c.ID)
	return nil
}
