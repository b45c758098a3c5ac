package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient proxies tutor prompts to the generative-text API. Failures
// never surface as errors to the chat flow; they become placeholder replies
// so the session transcript stays intact.

type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// NewGeminiClientWithBaseURL exists for tests pointing at a fake server.
func NewGeminiClientWithBaseURL(baseURL, apiKey, model string) *GeminiClient {
	c := NewGeminiClient(apiKey, model)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) GenerateText(ctx context.Context, userMessage string) string {
	if c.apiKey == "" {
		return "[AI is not configured] Please set GEMINI_API_KEY to enable AI responses."
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: userMessage}}}},
	})

	if err != nil {
		return "[AI error] " + err.Error()
	}

	path := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(body))

	if err != nil {
		return "[AI error] " + err.Error()
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)

	if err != nil {
		return "[AI error] " + err.Error()
	}

	defer resp.Body.Close()

	var out generateResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "[AI error] Empty response from Gemini."
	}

	if out.Error != nil {
		return "[AI error] " + out.Error.Message
	}

	if len(out.Candidates) == 0 {
		return "[AI] No candidates returned."
	}

	parts := out.Candidates[0].Content.Parts

	if len(parts) == 0 {
		return "[AI] No parts returned."
	}

	text := strings.TrimSpace(parts[0].Text)

	if text == "" {
		return "[AI] Empty text returned."
	}

	return text
}
