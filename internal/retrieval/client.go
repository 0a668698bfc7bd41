package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HTTPClient talks to the retrieval collaborator over its JSON API.
// Callers bound each request with a context deadline; the collaborator
// embeds queries, so latency is expected.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type retrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type retrieveResponse struct {
	Results []Snippet `json:"results"`
}

func (c *HTTPClient) Retrieve(
	ctx context.Context,
	query string,
	topK int,
) ([]Snippet, error) {

	body, err := json.Marshal(retrieveRequest{Query: query, TopK: topK})
	if err != nil {
		return nil, fmt.Errorf("retrieval request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/retrieve",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("retrieval request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("retrieval service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieval service returned %d", resp.StatusCode)
	}

	var out retrieveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("retrieval response: %w", err)
	}

	return out.Results, nil
}

var _ Retriever = (*HTTPClient)(nil)
