package ragindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/config"
)

// Client talks to the retrieval service that makes finalized cases
// searchable. LoadCase is only ever called fire-and-forget; Query backs the
// user-facing passthrough endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type loadRequest struct {
	CaseID string `json:"caseID"`
}

type loadResponse struct {
	Message        string `json:"message,omitempty"`
	DocumentsCount int    `json:"documents_count,omitempty"`
}

// LoadCase asks the retrieval service to index a case. Vector store creation
// runs an embedding pipeline, so the call carries its own generous timeout.
func (c *Client) LoadCase(ctx context.Context, caseID string) error {
	ctx, cancel := context.WithTimeout(ctx, config.RAGLoadTimeout)
	defer cancel()

	var out loadResponse
	if err := c.post(ctx, "/rag/load", loadRequest{CaseID: caseID}, &out); err != nil {
		return fmt.Errorf("load case %s: %w", caseID, err)
	}

	log.Info().
		Str("caseId", caseID).
		Int("documentsCount", out.DocumentsCount).
		Msg("case loaded into retrieval index")
	return nil
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// Query forwards a free-text question to the retrieval service and returns
// its answer.
func (c *Client) Query(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RAGQueryTimeout)
	defer cancel()

	var out queryResponse
	if err := c.post(ctx, "/rag/query", queryRequest{Query: query}, &out); err != nil {
		return "", fmt.Errorf("rag query: %w", err)
	}
	return out.Response, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
