package agentapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DocumentsPath is the documents collection path.
const DocumentsPath = "/api/documents/"

// DocumentsListPath builds the listing path for a filter. The bare collection
// path is returned for an empty filter; it doubles as the cache key for that
// listing.
func DocumentsListPath(filter DocumentFilter) string {
	values := url.Values{}
	if filter.Category != "" {
		values.Set("category", filter.Category)
	}
	if filter.Tag != "" {
		values.Set("tag", filter.Tag)
	}
	if len(values) == 0 {
		return DocumentsPath
	}
	return DocumentsPath + "?" + values.Encode()
}

// documentsResponse represents the response from the documents listing endpoint.
type documentsResponse struct {
	Documents []Document `json:"documents"`
}

// documentResponse represents the response from the single-document endpoint.
type documentResponse struct {
	Document Document `json:"document"`
}

// ListDocuments returns uploaded documents, optionally filtered by category
// and tag.
func (c *Client) ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	var resp documentsResponse
	if err := c.getJSON(ctx, DocumentsListPath(filter), &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// GetDocument returns a single document's metadata.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	var resp documentResponse
	if err := c.getJSON(ctx, DocumentsPath+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Document, nil
}

// UploadRequest describes a document upload. Tags are comma-joined into a
// single form field, matching the backend's form contract.
type UploadRequest struct {
	Filename    string
	Content     io.Reader
	Description string
	Tags        []string
	Category    string
}

// UploadDocument uploads a file to the knowledge base. Optional metadata
// fields are omitted from the form when empty.
func (c *Client) UploadDocument(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	var fields [][2]string
	if req.Description != "" {
		fields = append(fields, [2]string{"description", req.Description})
	}
	if len(req.Tags) > 0 {
		fields = append(fields, [2]string{"tags", strings.Join(req.Tags, ",")})
	}
	if req.Category != "" {
		fields = append(fields, [2]string{"category", req.Category})
	}

	var result UploadResult
	err := c.uploadMultipart(ctx, DocumentsPath+"upload", "file", req.Filename, req.Content, fields, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDocument removes a document from storage and the knowledge base.
func (c *Client) DeleteDocument(ctx context.Context, id string) (*DeleteResult, error) {
	var result DeleteResult
	if err := c.doMethodJSON(ctx, http.MethodDelete, DocumentsPath+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReprocessDocument re-runs ingestion for a document.
func (c *Client) ReprocessDocument(ctx context.Context, id string) (*ReprocessResult, error) {
	path := DocumentsPath + url.PathEscape(id) + "/reprocess"
	var result ReprocessResult
	if err := c.doMethodJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDocumentContent fetches a document's content for viewing.
func (c *Client) GetDocumentContent(ctx context.Context, id string) (*DocumentContent, error) {
	path := DocumentsPath + url.PathEscape(id) + "/content"
	var content DocumentContent
	if err := c.getJSON(ctx, path, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Bytes returns the decoded content. Base64-encoded payloads are decoded;
// everything else is returned as-is.
func (dc *DocumentContent) Bytes() ([]byte, error) {
	if dc.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(dc.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document content: %w", err)
		}
		return decoded, nil
	}
	return []byte(dc.Content), nil
}
