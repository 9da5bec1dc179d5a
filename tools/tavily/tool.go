// Package tavily implements a web search tool backed by the Tavily API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brook-ai/brook/schema"
	"github.com/brook-ai/brook/tools"
)

const defaultBaseURL = "https://api.tavily.com"

// Input Schema for searching the web for current information such as weather,
// events, or anything outside the booking database.
type Input struct {
	schema.Base
	// Query the search query
	Query string `json:"query" jsonschema:"title=query,description=The search query." validate:"required"`
}

func NewInput(query string) *Input {
	return &Input{Query: query}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchResultItem represents a single search result item
type SearchResultItem struct {
	// URL The URL of the search result
	URL string `json:"url"`
	// Title The title of the search result
	Title string `json:"title"`
	// Content The content snippet of the search result
	Content string `json:"content,omitempty"`
	// Score The relevance score of the search result
	Score float64 `json:"score,omitempty"`
}

// Output represents the output of the Tavily search tool.
type Output struct {
	schema.Base
	// Results List of search result items
	Results []SearchResultItem `json:"results,omitempty"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s.Results)
	return string(bs)
}

type Config struct {
	tools.Config
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// Search is a tool for performing web searches through the Tavily API.
type Search struct {
	Config
}

func New(opts ...Option) *Search {
	ret := new(Search)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("tavily_search_results_json")
	}
	if ret.baseURL == "" {
		ret.baseURL = defaultBaseURL
	}
	if ret.maxResults == 0 {
		ret.maxResults = 1
	}
	if ret.httpClient == nil {
		ret.httpClient = http.DefaultClient
	}
	return ret
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultItem `json:"results"`
}

// Run performs the web search synchronously.
func (t *Search) Run(ctx context.Context, input *Input) (*Output, error) {
	payload, err := json.Marshal(searchRequest{
		APIKey:     t.apiKey,
		Query:      input.Query,
		MaxResults: t.maxResults,
	})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error querying search engine: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 response from search engine: %d", httpResp.StatusCode)
	}
	var resp searchResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	return &Output{Results: resp.Results}, nil
}

// Register wires the web search tool into a registry.
func Register(r *tools.Registry, search *Search) {
	tools.Register(r, tools.Definition{
		Name:        search.Title(),
		Description: "A search engine optimized for comprehensive, accurate, and trusted results. Useful for answering questions about current events.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "The search query."}
			},
			"required": ["query"]
		}`),
	}, search)
}
