package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/history"
)

// stepCount counts the execution steps reported for a query response
func stepCount(resp *agentapi.QueryResponse) int {
	if resp.Metadata == nil {
		return 0
	}
	return len(resp.Metadata.ExecutionSteps)
}

// QueryCmd sends one chat turn to the agent
type QueryCmd struct {
	Text         []string `arg:"" help:"Query text"`
	Conversation string   `short:"c" help:"Conversation ID to continue"`
	Continue     bool     `short:"C" help:"Continue the most recent conversation"`
	ShowSteps    bool     `short:"s" help:"Show the agent's execution steps"`
	Format       string   `short:"f" enum:"text,json" default:"text" help:"Output format"`
}

func (c *QueryCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	query := strings.Join(c.Text, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query text is required")
	}

	db, err := a.history()
	if err != nil {
		return err
	}

	conversationID, err := c.resolveConversation(db)
	if err != nil {
		return err
	}
	a.store.SetConversationID(conversationID)

	resp, err := a.store.SendQuery(context.Background(), query, nil)
	if err != nil {
		return err
	}

	if db != nil {
		if err := recordTurn(db, query, resp.Response, resp.ConversationID, stepCount(resp)); err != nil {
			a.logger.Warn("failed to record conversation turn", "error", err)
		}
	}

	if c.Format == "json" {
		return printJSON(resp)
	}

	fmt.Println(resp.Response)
	fmt.Printf("\n[conversation: %s]\n", resp.ConversationID)

	if c.ShowSteps && resp.Metadata != nil && len(resp.Metadata.ExecutionSteps) > 0 {
		fmt.Println()
		printExecutionSteps(resp.Metadata.ExecutionSteps)
	}
	return nil
}

// resolveConversation picks the conversation to thread: an explicit ID wins,
// --continue selects the most recently updated local conversation, otherwise
// a fresh conversation starts.
func (c *QueryCmd) resolveConversation(db *history.DB) (string, error) {
	if c.Conversation != "" {
		return c.Conversation, nil
	}
	if !c.Continue {
		return "", nil
	}
	if db == nil {
		return "", fmt.Errorf("--continue requires history to be enabled")
	}

	conv, err := history.GetLatestConversation(context.Background(), db.DB())
	if err != nil {
		return "", fmt.Errorf("failed to look up latest conversation: %w", err)
	}
	if conv == nil {
		return "", nil
	}
	return conv.ID, nil
}

// recordTurn upserts the conversation and appends the exchange.
func recordTurn(db *history.DB, query, response, conversationID string, steps int) error {
	ctx := context.Background()

	title := query
	if len(title) > 80 {
		title = title[:80]
	}
	conv := &history.Conversation{ID: conversationID, Title: title}
	if err := history.UpsertConversation(ctx, db.DB(), conv); err != nil {
		return err
	}

	return history.AppendTurn(ctx, db.DB(), &history.Turn{
		ConversationID: conversationID,
		Query:          query,
		Response:       response,
		StepCount:      steps,
	})
}
