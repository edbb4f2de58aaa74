package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
)

// AgentCmd inspects the agent backend
type AgentCmd struct {
	Config AgentConfigCmd `cmd:"" help:"Show the agent's LLM configuration"`
	Info   AgentInfoCmd   `cmd:"" help:"Show backend name and version"`
}

// AgentConfigCmd shows the agent's LLM configuration
type AgentConfigCmd struct {
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format"`
}

func (c *AgentConfigCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, err := a.store.Client().GetAgentConfig(context.Background())
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return printJSON(cfg)
	}

	fmt.Printf("Provider:    %s\n", cfg.LLMProvider)
	fmt.Printf("Model:       %s\n", cfg.Model)
	fmt.Printf("Temperature: %g\n", cfg.Temperature)
	if cfg.MaxTokens != nil {
		fmt.Printf("Max tokens:  %d\n", *cfg.MaxTokens)
	}
	return nil
}

// AgentInfoCmd shows backend name and version
type AgentInfoCmd struct{}

func (c *AgentInfoCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	info, err := a.store.Client().ServerInfo(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n%s\n", info.Name, info.Version, info.Description)
	return nil
}

// HealthCmd checks backend health
type HealthCmd struct{}

func (c *HealthCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	status, err := a.store.Client().Health(context.Background())
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}

	fmt.Printf("Backend %s: %s\n", a.cfg.Server.URL, status.Status)
	return nil
}
