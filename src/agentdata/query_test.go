package agentdata

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanhdev/agentweave/src/agentapi"
)

func TestSendQueryThreadsConversation(t *testing.T) {
	var seen []string
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req agentapi.QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req.ConversationID)
		json.NewEncoder(w).Encode(agentapi.QueryResponse{
			Response:       "answer",
			ConversationID: "conv-1",
		})
	}))

	ctx := context.Background()

	resp, err := store.SendQuery(ctx, "first", nil)
	require.NoError(t, err)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "conv-1", store.ConversationID())

	_, err = store.SendQuery(ctx, "second", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "conv-1"}, seen, "first turn unthreaded, later turns threaded")
}

func TestSendQueryFailureNotification(t *testing.T) {
	store, rec := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"detail": "llm provider unavailable"}`))
	}))

	_, err := store.SendQuery(context.Background(), "hello", nil)
	require.Error(t, err)
	require.Len(t, rec.Errors(), 1)
	assert.Equal(t, "Query failed: llm provider unavailable", rec.Errors()[0])
	assert.Empty(t, store.ConversationID(), "failed queries never thread")
}

func TestResetConversationClearsThreading(t *testing.T) {
	store, rec := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","message":"reset"}`))
	}))

	store.SetConversationID("conv-9")
	require.NoError(t, store.ResetConversation(context.Background(), "conv-9"))
	assert.Empty(t, store.ConversationID())
	assert.Equal(t, []string{"Conversation conv-9 reset"}, rec.Successes())
}

func TestResetOtherConversationKeepsThreading(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","message":"reset"}`))
	}))

	store.SetConversationID("conv-1")
	require.NoError(t, store.ResetConversation(context.Background(), "conv-2"))
	assert.Equal(t, "conv-1", store.ConversationID(), "resetting another conversation leaves threading alone")
}
