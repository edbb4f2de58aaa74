package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/vietanhdev/agentweave/src/agentapi"
)

// DocsCmd represents all document-related commands
type DocsCmd struct {
	List      DocsListCmd      `cmd:"" help:"List uploaded documents"`
	Show      DocsShowCmd      `cmd:"" help:"Show document details"`
	Upload    DocsUploadCmd    `cmd:"" help:"Upload a document to the knowledge base"`
	Delete    DocsDeleteCmd    `cmd:"" help:"Delete a document"`
	Reprocess DocsReprocessCmd `cmd:"" help:"Re-run ingestion for a document"`
	Content   DocsContentCmd   `cmd:"" help:"Fetch a document's content"`
}

// DocsListCmd lists uploaded documents
type DocsListCmd struct {
	Format   string `short:"f" enum:"table,json" default:"table" help:"Output format"`
	Category string `short:"c" help:"Filter by category"`
	Tag      string `short:"t" help:"Filter by tag"`
}

func (c *DocsListCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	filter := agentapi.DocumentFilter{Category: c.Category, Tag: c.Tag}
	docs, err := a.store.Documents(filter).Get(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	switch c.Format {
	case "json":
		return printJSON(docs)
	default:
		return printDocumentsTable(docs)
	}
}

// DocsShowCmd shows a single document's metadata
type DocsShowCmd struct {
	ID     string `arg:"" help:"Document ID"`
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format"`
}

func (c *DocsShowCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := a.store.Client().GetDocument(context.Background(), c.ID)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return printJSON(doc)
	}
	return printDocumentDetail(doc)
}

// DocsUploadCmd uploads a file to the knowledge base
type DocsUploadCmd struct {
	Path        string   `arg:"" help:"File to upload" type:"path"`
	Description string   `short:"d" help:"Document description"`
	Tags        []string `short:"t" help:"Document tags"`
	Category    string   `short:"c" help:"Document category"`

	fs afero.Fs
}

func (c *DocsUploadCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	fs := c.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	file, err := fs.Open(c.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer file.Close()

	result, err := a.store.UploadDocument(context.Background(), agentapi.UploadRequest{
		Filename:    filepath.Base(c.Path),
		Content:     file,
		Description: c.Description,
		Tags:        c.Tags,
		Category:    c.Category,
	})
	if err != nil {
		return err
	}

	doc := result.Document
	fmt.Printf("Uploaded %s (id: %s, %d bytes)\n", doc.Filename, doc.ID, doc.Size)
	if doc.IngestionStatus != nil && !doc.IngestionStatus.Processed {
		fmt.Printf("Warning: ingestion failed: %s\n", doc.IngestionStatus.Error)
	}
	return nil
}

// DocsDeleteCmd deletes a document
type DocsDeleteCmd struct {
	ID string `arg:"" help:"Document ID"`
}

func (c *DocsDeleteCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.store.DeleteDocument(context.Background(), c.ID)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

// DocsReprocessCmd re-runs ingestion for a document
type DocsReprocessCmd struct {
	ID string `arg:"" help:"Document ID"`
}

func (c *DocsReprocessCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.store.ReprocessDocument(context.Background(), c.ID)
	if err != nil {
		return err
	}

	if result.IngestionStatus != nil {
		fmt.Printf("Reprocessed %s: processed=%v chunks=%d\n",
			result.DocumentID, result.IngestionStatus.Processed, result.IngestionStatus.ChunkCount)
		if result.IngestionStatus.Error != "" {
			fmt.Printf("Error: %s\n", result.IngestionStatus.Error)
		}
		return nil
	}
	fmt.Printf("Reprocessed %s\n", result.DocumentID)
	return nil
}

// DocsContentCmd fetches a document's content
type DocsContentCmd struct {
	ID     string `arg:"" help:"Document ID"`
	Output string `short:"o" help:"Write content to file instead of stdout" type:"path"`

	fs afero.Fs
}

func (c *DocsContentCmd) Run(ctx *kong.Context, cli *CLI) error {
	a, err := newApp(cli)
	if err != nil {
		return err
	}
	defer a.close()

	content, err := a.store.Client().GetDocumentContent(context.Background(), c.ID)
	if err != nil {
		return err
	}

	data, err := content.Bytes()
	if err != nil {
		return err
	}

	if c.Output != "" {
		fs := c.fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if err := afero.WriteFile(fs, c.Output, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Output, err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), c.Output)
		return nil
	}

	out := string(data)
	fmt.Print(out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Println()
	}
	return nil
}
