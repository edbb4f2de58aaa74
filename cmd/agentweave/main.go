package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	ServerURL string `env:"AGENTWEAVE_SERVER_URL" help:"Agent backend base URL"`
	Config    string `help:"Path to config file" type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error)"`
	Quiet     bool   `short:"q" help:"Suppress success/error notifications"`

	Tools         ToolsCmd         `cmd:"" help:"Inspect and manage agent tools"`
	Docs          DocsCmd          `cmd:"" help:"Manage knowledge base documents"`
	Query         QueryCmd         `cmd:"" help:"Send a chat query to the agent"`
	Conversations ConversationsCmd `cmd:"" help:"Manage conversations"`
	Agent         AgentCmd         `cmd:"" help:"Inspect the agent backend"`
	Health        HealthCmd        `cmd:"" help:"Check backend health"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("agentweave"),
		kong.Description("Client for AgentWeave agent backends"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
