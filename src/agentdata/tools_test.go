package agentdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/notify"
	"github.com/vietanhdev/agentweave/src/resource"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, *notify.Recorder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := agentapi.NewClient(agentapi.Config{BaseURL: server.URL})
	rec := &notify.Recorder{}
	store := NewStore(client, resource.NewMemoryCache(0), WithNotifier(rec))
	return store, rec
}

func TestToggleToolSuccess(t *testing.T) {
	var listCalls int32
	enabled := false
	store, rec := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/tools/" && r.Method == http.MethodGet:
			atomic.AddInt32(&listCalls, 1)
			json.NewEncoder(w).Encode(map[string][]agentapi.Tool{
				"tools": {{Name: "calculator", Enabled: enabled}},
			})
		case r.URL.Path == "/api/tools/calculator/toggle" && r.Method == http.MethodPatch:
			var body struct {
				Enabled bool `json:"enabled"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			enabled = body.Enabled
			json.NewEncoder(w).Encode(agentapi.ToolStatus{Status: "ok", Tool: "calculator", Enabled: enabled})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	// Prime the tools listing.
	tools, err := store.Tools().Get(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.False(t, tools[0].Enabled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))

	status, err := store.ToggleTool(ctx, "calculator", true)
	require.NoError(t, err)
	assert.True(t, status.Enabled)
	assert.Equal(t, []string{"Tool calculator enabled"}, rec.Successes())

	// The toggle invalidated the listing, so the next read refetches and
	// reflects the new state.
	tools, err = store.Tools().Get(ctx)
	require.NoError(t, err)
	assert.True(t, tools[0].Enabled)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
}

func TestToggleToolFailureNotifiesAndReturnsError(t *testing.T) {
	store, rec := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "locked"}`))
	}))

	_, err := store.ToggleTool(context.Background(), "x", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")

	require.Len(t, rec.Errors(), 1)
	assert.Equal(t, "Failed to enable x: locked", rec.Errors()[0])
	assert.Empty(t, rec.Successes())
}

func TestToggleToolFailureKeepsCachedListing(t *testing.T) {
	var listCalls int32
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&listCalls, 1)
			json.NewEncoder(w).Encode(map[string][]agentapi.Tool{
				"tools": {{Name: "calculator"}},
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "tool registry unavailable"}`))
	}))

	ctx := context.Background()
	_, err := store.Tools().Get(ctx)
	require.NoError(t, err)

	_, err = store.ToggleTool(ctx, "calculator", false)
	require.Error(t, err)

	// The failed mutation must not invalidate, so this read is served from
	// the cache.
	_, err = store.Tools().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))
}

func TestToggleDisableWording(t *testing.T) {
	store, rec := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "tool is required by the agent"}`))
	}))

	_, err := store.ToggleTool(context.Background(), "search", false)
	require.Error(t, err)
	require.Len(t, rec.Errors(), 1)
	assert.Equal(t, "Failed to disable search: tool is required by the agent", rec.Errors()[0])
}

func TestExecuteToolValidatesBeforeNetwork(t *testing.T) {
	var executeCalls int32
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tools/":
			json.NewEncoder(w).Encode(map[string][]agentapi.Tool{
				"tools": {{
					Name:               "calculator",
					RequiredParameters: []string{"expression"},
				}},
			})
		case "/api/tools/calculator/execute":
			atomic.AddInt32(&executeCalls, 1)
			json.NewEncoder(w).Encode(agentapi.ToolExecution{Status: "ok", Tool: "calculator", Result: "4"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	_, err := store.ExecuteTool(ctx, "calculator", map[string]interface{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression")
	assert.Equal(t, int32(0), atomic.LoadInt32(&executeCalls), "validation failures stay local")

	result, err := store.ExecuteTool(ctx, "calculator", map[string]interface{}{"expression": "2+2"})
	require.NoError(t, err)
	assert.Equal(t, "4", result.Result)
	assert.Equal(t, int32(1), atomic.LoadInt32(&executeCalls))
}

func TestExecuteToolUnknownTool(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]agentapi.Tool{"tools": {}})
	}))

	_, err := store.ExecuteTool(context.Background(), "ghost", nil)
	assert.ErrorIs(t, err, agentapi.ErrToolNotFound)
}
