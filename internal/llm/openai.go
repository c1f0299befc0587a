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
	defaultOpenAIBaseURL = "https://api.deepseek.com"
	defaultOpenAIModel   = "deepseek-chat"
)

// stopSequences keeps the model from opening a fenced code block.
var stopSequences = []string{"```"}

type openaiProvider struct {
	model       string
	baseURL     string
	temperature float64
	client      *http.Client
}

func newOpenAIProvider(cfg *config.Config, client *http.Client) *openaiProvider {
	model := cfg.LLM.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	baseURL := cfg.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &openaiProvider{
		model:       model,
		baseURL:     baseURL,
		temperature: cfg.LLM.Temperature,
		client:      client,
	}
}

type openaiRequest struct {
	Model          string          `json:"model"`
	Messages       []openaiMessage `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens"`
	Stop           []string        `json:"stop,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *openaiProvider) name() string { return "openai" }

func (o *openaiProvider) complete(ctx context.Context, apiKey string, c completion) (string, error) {
	body := openaiRequest{
		Model:     o.model,
		MaxTokens: c.MaxTokens,
	}
	if c.System != "" {
		body.Messages = append(body.Messages, openaiMessage{Role: "system", Content: c.System})
		t := o.temperature
		body.Temperature = &t
		body.Stop = stopSequences
		body.ResponseFormat = &responseFormat{Type: "text"}
	}
	body.Messages = append(body.Messages, openaiMessage{Role: "user", Content: c.User})

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := o.baseURL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", transportError(o.name(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(o.name(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", statusError(o.name(), resp.StatusCode, respBody)
	}
	if msg, ok := upstreamMessage(respBody); ok {
		return "", errcode.New(errcode.APIError, "%s", msg)
	}

	var apiResp openaiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", errcode.Wrap(errcode.APIError, err, "invalid response format")
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == nil {
		return "", errcode.New(errcode.APIError, "invalid response format")
	}
	return *apiResp.Choices[0].Message.Content, nil
}
