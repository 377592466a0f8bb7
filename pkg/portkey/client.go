package portkey

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL  = "https://api.portkey.ai/v1"
	defaultProvider = "openai"
)

// Client performs chat completions and feedback submission through the
// Portkey LLM gateway.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
	Feedback(ctx context.Context, req FeedbackRequest) error
}

// ChatCompletionRequest is the request for POST /chat/completions. Trace,
// Span, and SpanName are forwarded as gateway observability headers, not in
// the body.
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`

	TraceID  string `json:"-"`
	SpanID   string `json:"-"`
	SpanName string `json:"-"`
}

// Message represents a single message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse is the OpenAI-compatible completion response.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is a single completion choice.
type Choice struct {
	Index   int     `json:"index"`
	Message Message `json:"message"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// FeedbackRequest is the request body for POST /feedback.
type FeedbackRequest struct {
	TraceID string `json:"trace_id"`
	Value   int    `json:"value"`
	Weight  int    `json:"weight"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default gateway base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithProvider overrides the default upstream provider.
func WithProvider(provider string) Option {
	return func(c *httpClient) {
		c.provider = provider
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey      string
	providerKey string
	provider    string
	baseURL     string
	http        *http.Client
}

// NewClient creates a Portkey gateway client. apiKey authenticates with the
// gateway; providerKey is passed through to the upstream completion provider.
func NewClient(apiKey, providerKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:      apiKey,
		providerKey: providerKey,
		provider:    defaultProvider,
		baseURL:     defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Minute,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "portkey: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "portkey: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.providerKey)
	httpReq.Header.Set("x-portkey-api-key", c.apiKey)
	httpReq.Header.Set("x-portkey-provider", c.provider)
	if req.TraceID != "" {
		httpReq.Header.Set("x-portkey-trace-id", req.TraceID)
	}
	if req.SpanID != "" {
		httpReq.Header.Set("x-portkey-span-id", req.SpanID)
	}
	if req.SpanName != "" {
		httpReq.Header.Set("x-portkey-span-name", req.SpanName)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "portkey: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "portkey: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("portkey: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "portkey: unmarshal response")
	}

	return &result, nil
}

func (c *httpClient) Feedback(ctx context.Context, req FeedbackRequest) error {
	if req.Weight == 0 {
		req.Weight = 1
	}

	body, err := json.Marshal(req)
	if err != nil {
		return eris.Wrap(err, "portkey: marshal feedback")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "portkey: create feedback request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-portkey-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return eris.Wrap(err, "portkey: send feedback")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "portkey: read feedback response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("portkey: feedback returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
