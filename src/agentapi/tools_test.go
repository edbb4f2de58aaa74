package agentapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTools(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tools/", r.URL.Path)
		w.Write([]byte(`{"tools":[
			{"name":"calculator","description":"Does math","enabled":true,"required_parameters":["expression"]},
			{"name":"weather","description":"Gets weather","enabled":false}
		]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	tools, err := client.ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "calculator", tools[0].Name)
	assert.True(t, tools[0].Enabled)
	assert.Equal(t, []string{"expression"}, tools[0].RequiredParameters)
	assert.False(t, tools[1].Enabled)
}

func TestGetTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tools":[{"name":"calculator","description":"Does math","enabled":true}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	tool, err := client.GetTool(context.Background(), "calculator")
	require.NoError(t, err)
	assert.Equal(t, "calculator", tool.Name)

	_, err = client.GetTool(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
}

func TestToggleTool(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody toggleRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Write([]byte(`{"status":"success","tool":"calculator","enabled":false}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	status, err := client.ToggleTool(context.Background(), "calculator", false)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/tools/calculator/toggle", gotPath)
	assert.False(t, gotBody.Enabled)
	assert.Equal(t, "calculator", status.Tool)
	assert.False(t, status.Enabled)
}

func TestExecuteTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tools/calculator/execute", r.URL.Path)
		var params map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "2+2", params["expression"])
		w.Write([]byte(`{"status":"ok","tool":"calculator","result":"4"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	result, err := client.ExecuteTool(context.Background(), "calculator", map[string]interface{}{"expression": "2+2"})
	require.NoError(t, err)
	assert.Equal(t, "4", result.Result)
}
