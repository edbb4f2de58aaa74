package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// ToolsCmd represents all tool-related commands
type ToolsCmd struct {
	List    ToolsListCmd    `cmd:"" help:"List available tools"`
	Show    ToolsShowCmd    `cmd:"" help:"Show tool details"`
	Enable  ToolsEnableCmd  `cmd:"" help:"Enable a tool"`
	Disable ToolsDisableCmd `cmd:"" help:"Disable a tool"`
	Execute ToolsExecuteCmd `cmd:"" help:"Execute a tool directly"`
}

// ToolsListCmd lists available tools
type ToolsListCmd struct {
	Format string `short:"f" enum:"table,json" default:"table" help:"Output format"`
	Status string `enum:"enabled,disabled,all" default:"all" help:"Filter by status"`
}

func (c *ToolsListCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	tools, err := a.store.Tools().Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	filtered := tools[:0:0]
	for _, tool := range tools {
		switch c.Status {
		case "enabled":
			if !tool.Enabled {
				continue
			}
		case "disabled":
			if tool.Enabled {
				continue
			}
		}
		filtered = append(filtered, tool)
	}

	switch c.Format {
	case "json":
		return printJSON(filtered)
	default:
		return printToolsTable(filtered)
	}
}

// ToolsShowCmd shows tool details
type ToolsShowCmd struct {
	Name   string `arg:"" help:"Tool name"`
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format"`
}

func (c *ToolsShowCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	tool, err := a.store.Client().GetTool(context.Background(), c.Name)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return printJSON(tool)
	}
	return printToolDetail(tool)
}

// ToolsEnableCmd enables a tool
type ToolsEnableCmd struct {
	Name string `arg:"" help:"Tool name"`
}

func (c *ToolsEnableCmd) Run(ctx *kong.Context, cli *CLI) error {
	return toggleTool(cli, c.Name, true)
}

// ToolsDisableCmd disables a tool
type ToolsDisableCmd struct {
	Name string `arg:"" help:"Tool name"`
}

func (c *ToolsDisableCmd) Run(ctx *kong.Context, cli *CLI) error {
	return toggleTool(cli, c.Name, false)
}

func toggleTool(cli *CLI, name string, enabled bool) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	status, err := a.store.ToggleTool(context.Background(), name, enabled)
	if err != nil {
		return err
	}

	// The toggle invalidated the tools key; refresh so the next read in
	// this process sees current state.
	if _, err := a.store.Tools().Revalidate(context.Background()); err != nil {
		a.logger.Warn("failed to refresh tools after toggle", "error", err)
	}

	fmt.Printf("%s: enabled=%v\n", status.Tool, status.Enabled)
	return nil
}

// ToolsExecuteCmd executes a tool directly with JSON parameters
type ToolsExecuteCmd struct {
	Name   string `arg:"" help:"Tool name"`
	Params string `short:"p" default:"{}" help:"Tool parameters (JSON object)"`
	File   string `short:"F" help:"Load parameters from a JSON file" type:"path"`
}

func (c *ToolsExecuteCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	raw := []byte(c.Params)
	if c.File != "" {
		raw, err = os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("failed to read parameters file: %w", err)
		}
	}

	var params map[string]interface{}
	if err := json.Unmarshal(raw, &params); err != nil {
		return fmt.Errorf("parameters must be a JSON object: %w", err)
	}

	result, err := a.store.ExecuteTool(context.Background(), c.Name, params)
	if err != nil {
		return err
	}
	return printJSON(result)
}
