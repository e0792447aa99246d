// Package llm is a minimal client for the Gemini generateContent API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("gemini api key not configured")

// Client is a minimal Gemini generateContent client.
type Client struct {
	// BaseURL is overridable for tests; defaults to the public API.
	BaseURL string

	apiKey string
	model  string
	hc     *http.Client
}

// NewClient creates a new client. If httpClient is nil, a default with
// a 60s timeout is used. An empty apiKey yields a degraded client that
// reports !Configured() and fails every Generate call with
// ErrNotConfigured instead of crashing startup.
func NewClient(apiKey, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &Client{
		BaseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		hc:      httpClient,
	}
}

// NewClientFromEnv creates a client from GEMINI_API_KEY and GEMINI_MODEL.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"), nil)
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one non-streaming generateContent request and returns
// the concatenated text of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	body := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: temperature},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("gemini new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("gemini decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("gemini response contained no candidates")
	}

	out := ""
	for _, p := range parsed.Candidates[0].Content.Parts {
		out += p.Text
	}
	if out == "" {
		return "", fmt.Errorf("gemini response contained no text")
	}
	return out, nil
}
