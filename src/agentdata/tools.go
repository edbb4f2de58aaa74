package agentdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/resource"
)

// Tools returns the cache-backed resource for the tools listing.
func (s *Store) Tools() *resource.Resource[[]agentapi.Tool] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tools == nil {
		s.tools = resource.NewResource(agentapi.ToolsPath, s.cache,
			func(ctx context.Context) ([]agentapi.Tool, error) {
				return s.client.ListTools(ctx)
			},
			resource.WithGroup[[]agentapi.Tool](&s.group),
			resource.WithLogger[[]agentapi.Tool](s.logger),
		)
	}
	return s.tools
}

// ToggleInput identifies the tool and the desired enabled state.
type ToggleInput struct {
	Name    string
	Enabled bool
}

// ToggleTool enables or disables a tool. On success the tools listing key is
// invalidated and a success notification is raised; on failure the
// notification wording distinguishes enable from disable and the error is
// returned for the caller to layer its own handling.
func (s *Store) ToggleTool(ctx context.Context, name string, enabled bool) (*agentapi.ToolStatus, error) {
	mutation := resource.NewMutation(
		func(ctx context.Context, in ToggleInput) (*agentapi.ToolStatus, error) {
			return s.client.ToggleTool(ctx, in.Name, in.Enabled)
		},
		resource.WithNotifier[ToggleInput, *agentapi.ToolStatus](s.notifier),
		resource.WithInvalidation[ToggleInput, *agentapi.ToolStatus](s.cache, agentapi.ToolsPath),
		resource.WithErrorMessage[ToggleInput, *agentapi.ToolStatus](toggleErrorMessage),
		resource.WithMutationLogger[ToggleInput, *agentapi.ToolStatus](s.logger),
		resource.WithHooks(resource.Hooks[ToggleInput, *agentapi.ToolStatus]{
			OnSuccess: func(in ToggleInput, _ *agentapi.ToolStatus) {
				s.notifier.Success(fmt.Sprintf("Tool %s %s", in.Name, verbPast(in.Enabled)))
			},
		}),
	)

	return mutation.Trigger(ctx, ToggleInput{Name: name, Enabled: enabled})
}

func toggleErrorMessage(in ToggleInput, err error) string {
	return fmt.Sprintf("Failed to %s %s: %s", verb(in.Enabled), in.Name, reason(err))
}

func verb(enabled bool) string {
	if enabled {
		return "enable"
	}
	return "disable"
}

func verbPast(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// reason extracts the human-readable part of an error for notifications:
// the backend-reported message for API errors, the full message otherwise.
func reason(err error) string {
	var apiErr *agentapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// ExecuteTool validates params against the tool's parameter schema, then runs
// the tool on the backend. Validation failures never reach the network.
func (s *Store) ExecuteTool(ctx context.Context, name string, params map[string]interface{}) (*agentapi.ToolExecution, error) {
	tool, err := s.client.GetTool(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := ValidateToolInput(tool, params); err != nil {
		return nil, err
	}

	mutation := resource.NewMutation(
		func(ctx context.Context, in map[string]interface{}) (*agentapi.ToolExecution, error) {
			return s.client.ExecuteTool(ctx, name, in)
		},
		resource.WithNotifier[map[string]interface{}, *agentapi.ToolExecution](s.notifier),
		resource.WithErrorMessage[map[string]interface{}, *agentapi.ToolExecution](func(_ map[string]interface{}, err error) string {
			return fmt.Sprintf("Failed to execute %s: %s", name, reason(err))
		}),
		resource.WithMutationLogger[map[string]interface{}, *agentapi.ToolExecution](s.logger),
	)

	return mutation.Trigger(ctx, params)
}
