package history

import "time"

// Conversation is a locally tracked conversation thread. The ID is the
// server-assigned conversation identifier.
type Conversation struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Turn is one query/response exchange within a conversation. StepCount is
// the number of execution steps the server reported for the turn.
type Turn struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	Query          string    `db:"query"`
	Response       string    `db:"response"`
	StepCount      int       `db:"step_count"`
	CreatedAt      time.Time `db:"created_at"`
}
