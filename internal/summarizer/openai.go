package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"swfdigest/internal/store"
)

// OpenAISummarizer calls the OpenAI chat completions API.
type OpenAISummarizer struct {
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
	baseURL   string
}

func NewOpenAISummarizer(apiKey, model string, maxTokens int) *OpenAISummarizer {
	return &OpenAISummarizer{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 120 * time.Second},
		baseURL:   "https://api.openai.com/v1/chat/completions",
	}
}

// OpenAI API request/response types

type chatRequest struct {
	Model               string        `json:"model"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
	Messages            []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *chatError   `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, docs []store.Document) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: missing API key", ErrSummarization)
	}

	reqBody := chatRequest{
		Model:               s.model,
		MaxCompletionTokens: s.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(docs)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrSummarization, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrSummarization, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", ErrSummarization, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrSummarization, err)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("%w: parse response (status %d): %v", ErrSummarization, resp.StatusCode, err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("%w: API error: %s - %s", ErrSummarization, apiResp.Error.Type, apiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrSummarization, resp.StatusCode)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrSummarization)
	}

	return strings.TrimSpace(apiResp.Choices[0].Message.Content), nil
}
