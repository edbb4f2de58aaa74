package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/history"
)

// printJSON writes v as indented JSON to stdout
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printToolsTable renders tools as an aligned table
func printToolsTable(tools []agentapi.Tool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tDESCRIPTION")
	for _, tool := range tools {
		fmt.Fprintf(w, "%s\t%v\t%s\n", tool.Name, tool.Enabled, truncate(tool.Description, 60))
	}
	return w.Flush()
}

// printToolDetail renders a single tool's full details
func printToolDetail(tool *agentapi.Tool) error {
	fmt.Printf("Name:        %s\n", tool.Name)
	fmt.Printf("Enabled:     %v\n", tool.Enabled)
	fmt.Printf("Description: %s\n", tool.Description)
	if len(tool.RequiredParameters) > 0 {
		fmt.Printf("Required:    %s\n", strings.Join(tool.RequiredParameters, ", "))
	}
	if len(tool.Parameters) > 0 {
		fmt.Println("Parameters:")
		var pretty map[string]interface{}
		if err := json.Unmarshal(tool.Parameters, &pretty); err == nil {
			data, _ := json.MarshalIndent(pretty, "  ", "  ")
			fmt.Printf("  %s\n", data)
		} else {
			fmt.Printf("  %s\n", tool.Parameters)
		}
	}
	return nil
}

// printDocumentsTable renders documents as an aligned table
func printDocumentsTable(docs []agentapi.Document) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSIZE\tTYPE\tCATEGORY\tPROCESSED")
	for _, doc := range docs {
		processed := "-"
		if doc.IngestionStatus != nil {
			processed = fmt.Sprintf("%v", doc.IngestionStatus.Processed)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			doc.ID, doc.Filename, doc.Size, doc.Type, doc.Category, processed)
	}
	return w.Flush()
}

// printDocumentDetail renders a single document's full details
func printDocumentDetail(doc *agentapi.Document) error {
	fmt.Printf("ID:          %s\n", doc.ID)
	fmt.Printf("Filename:    %s\n", doc.Filename)
	fmt.Printf("Size:        %d\n", doc.Size)
	fmt.Printf("Type:        %s\n", doc.Type)
	if doc.Description != "" {
		fmt.Printf("Description: %s\n", doc.Description)
	}
	if len(doc.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Category != "" {
		fmt.Printf("Category:    %s\n", doc.Category)
	}
	if doc.ChunkCount != nil {
		fmt.Printf("Chunks:      %d\n", *doc.ChunkCount)
	}
	if doc.IngestionStatus != nil {
		fmt.Printf("Processed:   %v\n", doc.IngestionStatus.Processed)
		if doc.IngestionStatus.Error != "" {
			fmt.Printf("Error:       %s\n", doc.IngestionStatus.Error)
		}
	}
	if doc.CreatedAt != "" {
		fmt.Printf("Created:     %s\n", doc.CreatedAt)
	}
	return nil
}

// printConversationsTable renders local conversations as an aligned table
func printConversationsTable(convs []*history.Conversation) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
	for _, conv := range convs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			conv.ID, truncate(conv.Title, 50), conv.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// printExecutionSteps renders the agent's execution trace in order
func printExecutionSteps(steps []agentapi.ExecutionStep) {
	fmt.Println("Execution steps:")
	for i, step := range steps {
		label := step.Type
		if step.Type == agentapi.StepTypeToolCall && step.ToolCall != nil {
			label = fmt.Sprintf("%s (%s)", step.Type, step.ToolCall.Name)
		}
		fmt.Printf("  %d. %s [%s]\n", i+1, label, step.Status)
		if step.Error != "" {
			fmt.Printf("     error: %s\n", step.Error)
		}
	}
}

// truncate shortens s to max runes with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
