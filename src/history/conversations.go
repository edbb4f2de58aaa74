package history

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// GetConversationByID retrieves a conversation by its ID
func GetConversationByID(ctx context.Context, db sqlscan.Querier, conversationID string) (*Conversation, error) {
	query := `SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?`
	var conv Conversation
	err := sqlscan.Get(ctx, db, &conv, query, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &conv, nil
}

// GetLatestConversation retrieves the most recently updated conversation
func GetLatestConversation(ctx context.Context, db sqlscan.Querier) (*Conversation, error) {
	query := `SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC LIMIT 1`
	var conv Conversation
	err := sqlscan.Get(ctx, db, &conv, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No conversations exist
		}
		return nil, err
	}
	return &conv, nil
}

// ListConversations retrieves all conversations, most recently updated first
func ListConversations(ctx context.Context, db sqlscan.Querier) ([]*Conversation, error) {
	query := `SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC`
	var convs []*Conversation
	if err := sqlscan.Select(ctx, db, &convs, query); err != nil {
		return nil, err
	}
	return convs, nil
}

// UpsertConversation creates the conversation if it doesn't exist yet and
// bumps its updated_at otherwise. The title is only written on first insert.
func UpsertConversation(ctx context.Context, db Execer, conv *Conversation) error {
	now := time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now

	query := `INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`
	_, err := db.ExecContext(ctx, query, conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt)
	return err
}

// DeleteConversation removes a conversation and its turns
func DeleteConversation(ctx context.Context, db Execer, conversationID string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM turns WHERE conversation_id = ?`, conversationID); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, conversationID)
	return err
}

// AppendTurn records one query/response exchange for a conversation
func AppendTurn(ctx context.Context, db Execer, turn *Turn) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}

	query := `INSERT INTO turns (id, conversation_id, query, response, step_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, turn.ID, turn.ConversationID, turn.Query, turn.Response, turn.StepCount, turn.CreatedAt)
	return err
}

// GetTurns retrieves a conversation's turns in insertion order
func GetTurns(ctx context.Context, db sqlscan.Querier, conversationID string) ([]*Turn, error) {
	query := `SELECT id, conversation_id, query, response, step_count, created_at FROM turns WHERE conversation_id = ? ORDER BY created_at ASC`
	var turns []*Turn
	if err := sqlscan.Select(ctx, db, &turns, query, conversationID); err != nil {
		return nil, err
	}
	return turns, nil
}
