// Package genai provides the client for the remote text-generation service
// that produces commentary text from narration instructions.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fairwaycast/internal/logger"
)

// ── Wire types ───────────────────────────────────────────────────

// Params are the decoding parameters sent with every generation request.
type Params struct {
	DecodingMethod    string   `json:"decoding_method"`
	MaxNewTokens      int      `json:"max_new_tokens"`
	Temperature       float64  `json:"temperature"`
	TopK              int      `json:"top_k"`
	TopP              float64  `json:"top_p"`
	RepetitionPenalty float64  `json:"repetition_penalty"`
	StopSequences     []string `json:"stop_sequences"`
}

// ShotParams tune generation for the latency-critical shot path: short
// output, low temperature, stop as soon as the JSON object closes.
var ShotParams = Params{
	DecodingMethod:    "sample",
	MaxNewTokens:      200,
	Temperature:       0.2,
	TopK:              50,
	TopP:              1,
	RepetitionPenalty: 1.05,
	StopSequences:     []string{"}"},
}

// ProfileParams allow a slightly longer, livelier player introduction.
var ProfileParams = Params{
	DecodingMethod:    "sample",
	MaxNewTokens:      250,
	Temperature:       0.4,
	TopK:              50,
	TopP:              1,
	RepetitionPenalty: 1.05,
	StopSequences:     []string{"}"},
}

// payload is the request body for the generation endpoint.
type payload struct {
	ModelID    string `json:"model_id"`
	Input      string `json:"input"`
	Parameters Params `json:"parameters"`
	ProjectID  string `json:"project_id,omitempty"`
}

// apiResponse is the top-level response envelope.
type apiResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithParams overrides the default decoding parameters.
func WithParams(p Params) ClientOption {
	return func(c *Client) { c.params = p }
}

// WithProjectID sets the project the requests are billed against.
func WithProjectID(id string) ClientOption {
	return func(c *Client) { c.projectID = id }
}

// WithHTTPTimeout sets the HTTP client timeout. A hung generation call
// stalls the connection loop that issued it, so keep this tight.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to a text-generation endpoint. It does a single blocking
// round-trip per call and never retries; the caller decides what a lost
// narration opportunity costs.
type Client struct {
	endpoint  string
	apiKey    string
	model     string
	projectID string
	params    Params
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a generation client.
//   - endpoint: full URL of the text-generation resource
//   - apiKey:   the service API key
//   - model:    model identifier to generate with
func NewClient(endpoint, apiKey, model string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		params:   ShotParams,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate submits the prompt and returns the raw generated text. The raw
// text usually carries trailing garbage after the JSON object; hand it to
// ParseCommentary to extract the commentary field.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body := payload{
		ModelID:    c.model,
		Input:      prompt,
		Parameters: c.params,
		ProjectID:  c.projectID,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("genai: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("genai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("genai: POST %s (model=%s, %d prompt bytes)", c.endpoint, c.model, len(prompt))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("genai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("genai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genai: API %s: %s", resp.Status, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("genai: unmarshal response: %w", err)
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("genai: empty response (no results)")
	}

	raw := result.Results[0].GeneratedText
	c.log.Debug("genai: generated %d chars", len(raw))
	return raw, nil
}
