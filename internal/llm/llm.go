// Package llm adapts chat-completion providers into a content generator
// that rewrites template bodies and synthesizes fresh pages.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joestump/pagegen/internal/config"
	"github.com/joestump/pagegen/internal/errcode"
	"github.com/joestump/pagegen/internal/pagebuilder"
)

// RewriteRequest asks for a template body rewritten for new variables with
// its HTML structure, comments and shortcodes preserved.
type RewriteRequest struct {
	TemplateBody string
	Location     string
	Keyword      string
	SkillSet     string
	Builder      pagebuilder.Builder
}

// SynthesisRequest asks for a new page written from scratch.
type SynthesisRequest struct {
	Title     string
	Keywords  []string
	Location  string
	SkillSet  string
	Tone      string
	WordCount int
	Builder   pagebuilder.Builder
}

// Generator produces HTML content through an LLM provider.
type Generator interface {
	Rewrite(ctx context.Context, req RewriteRequest) (string, error)
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
	Ping(ctx context.Context) error
}

// completion is a single provider round trip.
type completion struct {
	System    string
	User      string
	MaxTokens int
}

type provider interface {
	name() string
	complete(ctx context.Context, apiKey string, c completion) (string, error)
}

// Client implements Generator against one provider.
type Client struct {
	provider   provider
	apiKey     string
	maxTokens  int
	commonDefs string
	prompts    *prompts
}

// New creates a Client for the configured provider. An empty provider
// selects the OpenAI-compatible DeepSeek endpoint.
func New(cfg *config.Config) (*Client, error) {
	timeout := cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	var p provider
	switch cfg.LLM.Provider {
	case "", "openai", "openai-compatible", "deepseek":
		p = newOpenAIProvider(cfg, httpClient)
	case "anthropic":
		p = newAnthropicProvider(cfg, httpClient)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}

	pr, err := loadPrompts(cfg.LLM.Prompt)
	if err != nil {
		return nil, fmt.Errorf("load prompts: %w", err)
	}

	maxTokens := cfg.LLM.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	return &Client{
		provider:   p,
		apiKey:     cfg.LLM.APIKey,
		maxTokens:  maxTokens,
		commonDefs: cfg.LLM.CommonDefinitions,
		prompts:    pr,
	}, nil
}

// Provider returns the provider name.
func (c *Client) Provider() string { return c.provider.name() }

// WithAPIKey returns a copy of c that authenticates with key.
func (c *Client) WithAPIKey(key string) *Client {
	cp := *c
	cp.apiKey = key
	return &cp
}

func (c *Client) requireKey() error {
	if c.apiKey == "" {
		return errcode.New(errcode.APIKeyMissing, "%s API key is not configured", c.provider.name())
	}
	return nil
}

// Rewrite regenerates the prose of a template body for the request variables.
func (c *Client) Rewrite(ctx context.Context, req RewriteRequest) (string, error) {
	if err := c.requireKey(); err != nil {
		return "", err
	}
	user, err := c.prompts.rewrite(promptData{
		Content:           req.TemplateBody,
		Location:          req.Location,
		Keyword:           req.Keyword,
		SkillSet:          req.SkillSet,
		CommonDefinitions: c.commonDefs,
		Builder:           req.Builder,
	})
	if err != nil {
		return "", errcode.Wrap(errcode.GenerationError, err, "render rewrite prompt")
	}
	out, err := c.run(ctx, user)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Synthesize writes a new page and checks it has an h1, an h2 and a paragraph.
func (c *Client) Synthesize(ctx context.Context, req SynthesisRequest) (string, error) {
	if err := c.requireKey(); err != nil {
		return "", err
	}
	user, err := c.prompts.synthesize(promptData{
		Title:             req.Title,
		Keywords:          req.Keywords,
		Location:          req.Location,
		SkillSet:          req.SkillSet,
		Tone:              req.Tone,
		WordCount:         req.WordCount,
		CommonDefinitions: c.commonDefs,
		Builder:           req.Builder,
	})
	if err != nil {
		return "", errcode.Wrap(errcode.GenerationError, err, "render synthesis prompt")
	}
	out, err := c.run(ctx, user)
	if err != nil {
		return "", err
	}
	if out, err = FromMarkdown(out); err != nil {
		return "", errcode.Wrap(errcode.APIError, err, "render markdown response")
	}
	if err := ValidateStructure(out); err != nil {
		return "", err
	}
	return out, nil
}

// Ping sends a minimal request to confirm the key and endpoint work.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.requireKey(); err != nil {
		return err
	}
	_, err := c.provider.complete(ctx, c.apiKey, completion{User: "Test connection", MaxTokens: 5})
	return err
}

func (c *Client) run(ctx context.Context, user string) (string, error) {
	raw, err := c.provider.complete(ctx, c.apiKey, completion{
		System:    c.prompts.system,
		User:      user,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", err
	}
	out := Clean(raw)
	if out == "" {
		return "", errcode.New(errcode.APIError, "invalid response format")
	}
	return out, nil
}
