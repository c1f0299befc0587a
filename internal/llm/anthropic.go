package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joestump/pagegen/internal/config"
	"github.com/joestump/pagegen/internal/errcode"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
	defaultAnthropicModel   = "claude-haiku-4-5-20251001"
)

type anthropicProvider struct {
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

func newAnthropicProvider(cfg *config.Config, client *http.Client) *anthropicProvider {
	model := cfg.LLM.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &anthropicProvider{
		model:       model,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: cfg.LLM.Temperature,
		client:      client,
	}
}

type anthropicRequest struct {
	Model         string             `json:"model"`
	System        string             `json:"system,omitempty"`
	MaxTokens     int                `json:"max_tokens"`
	Temperature   *float64           `json:"temperature,omitempty"`
	StopSequences []string           `json:"stop_sequences,omitempty"`
	Messages      []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *anthropicProvider) name() string { return "anthropic" }

func (a *anthropicProvider) complete(ctx context.Context, apiKey string, c completion) (string, error) {
	body := anthropicRequest{
		Model:     a.model,
		System:    c.System,
		MaxTokens: c.MaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: c.User}},
	}
	if c.System != "" {
		t := a.temperature
		body.Temperature = &t
		body.StopSequences = stopSequences
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", transportError(a.name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(a.name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError(a.name(), resp.StatusCode, respBody)
	}
	if msg, ok := upstreamMessage(respBody); ok {
		return "", errcode.New(errcode.APIError, "%s", msg)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", errcode.Wrap(errcode.APIError, err, "invalid response format")
	}

	var sb strings.Builder
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errcode.New(errcode.APIError, "invalid response format")
	}
	return sb.String(), nil
}
