package agentdata

import (
	"context"
	"fmt"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/resource"
)

// ConversationID returns the conversation the store is currently threading.
func (s *Store) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// SetConversationID pins the conversation to thread on the next query. Pass
// an empty string to start a fresh conversation.
func (s *Store) SetConversationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversationID = id
}

// SendQuery sends one chat turn. The server assigns a conversation ID on the
// first turn; the store records it and threads it on subsequent turns.
func (s *Store) SendQuery(ctx context.Context, query string, queryContext map[string]interface{}) (*agentapi.QueryResponse, error) {
	req := agentapi.QueryRequest{
		Query:          query,
		ConversationID: s.ConversationID(),
		Context:        queryContext,
	}

	mutation := resource.NewMutation(
		func(ctx context.Context, in agentapi.QueryRequest) (*agentapi.QueryResponse, error) {
			return s.client.Query(ctx, in)
		},
		resource.WithNotifier[agentapi.QueryRequest, *agentapi.QueryResponse](s.notifier),
		resource.WithErrorMessage[agentapi.QueryRequest, *agentapi.QueryResponse](func(_ agentapi.QueryRequest, err error) string {
			return fmt.Sprintf("Query failed: %s", reason(err))
		}),
		resource.WithMutationLogger[agentapi.QueryRequest, *agentapi.QueryResponse](s.logger),
		resource.WithHooks(resource.Hooks[agentapi.QueryRequest, *agentapi.QueryResponse]{
			OnSuccess: func(_ agentapi.QueryRequest, out *agentapi.QueryResponse) {
				s.SetConversationID(out.ConversationID)
			},
		}),
	)

	return mutation.Trigger(ctx, req)
}

// ResetConversation clears the server-side conversation state and, when it is
// the threaded conversation, the store's own threading.
func (s *Store) ResetConversation(ctx context.Context, id string) error {
	mutation := resource.NewMutation(
		func(ctx context.Context, in string) (struct{}, error) {
			return struct{}{}, s.client.ResetConversation(ctx, in)
		},
		resource.WithNotifier[string, struct{}](s.notifier),
		resource.WithErrorMessage[string, struct{}](func(in string, err error) string {
			return fmt.Sprintf("Failed to reset conversation %s: %s", in, reason(err))
		}),
		resource.WithMutationLogger[string, struct{}](s.logger),
		resource.WithHooks(resource.Hooks[string, struct{}]{
			OnSuccess: func(in string, _ struct{}) {
				s.mu.Lock()
				if s.conversationID == in {
					s.conversationID = ""
				}
				s.mu.Unlock()
				s.notifier.Success(fmt.Sprintf("Conversation %s reset", in))
			},
		}),
	)

	_, err := mutation.Trigger(ctx, id)
	return err
}
