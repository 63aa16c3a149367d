package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AzureClient talks to the Azure AI Search REST API.
type AzureClient struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Indexes    map[Collection]string
	Client     *http.Client
}

// Ensure AzureClient implements Backend
var _ Backend = &AzureClient{}

func NewAzureClient(endpoint, apiKey, apiVersion string, indexes map[Collection]string) *AzureClient {
	return &AzureClient{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		APIKey:     apiKey,
		APIVersion: apiVersion,
		Indexes:    indexes,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type azureSearchRequest struct {
	Search       string `json:"search"`
	Filter       string `json:"filter,omitempty"`
	SearchFields string `json:"searchFields,omitempty"`
	QueryType    string `json:"queryType,omitempty"`
	SearchMode   string `json:"searchMode,omitempty"`
	Top          int    `json:"top,omitempty"`
}

type azureSearchResponse struct {
	Value []Hit `json:"value"`
}

func (c *AzureClient) Search(ctx context.Context, req Request) ([]Hit, error) {
	index, ok := c.Indexes[req.Collection]
	if !ok || index == "" {
		return nil, fmt.Errorf("no index configured for collection %q", req.Collection)
	}

	text := req.Text
	if text == "" {
		text = MatchAll
	}

	payload := azureSearchRequest{
		Search:       text,
		Filter:       req.Filter,
		SearchFields: strings.Join(req.SearchFields, ","),
		QueryType:    string(req.QueryType),
		SearchMode:   string(req.Mode),
		Top:          req.Top,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s", c.Endpoint, index, c.APIVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.APIKey)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("azure search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure search error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed azureSearchResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Value, nil
}
