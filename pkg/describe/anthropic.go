package describe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/learnstack-hq/learnstack-course-harvester/pkg/httpclient"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicModel       = "claude-sonnet-4-5"
	anthropicMaxTokens   = 150
)

// Logger is the logging surface the cleaner relies on.
type Logger interface {
	WarnObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) WarnObj(string, string, interface{}) {}

// AnthropicCleaner generates two-sentence summaries through the Anthropic
// Messages API. Every failure path falls back to FallbackDescription.
type AnthropicCleaner struct {
	apiKey string
	url    string
	client httpclient.Client
	log    Logger
}

// NewAnthropicCleaner builds a cleaner backed by the Anthropic Messages API.
func NewAnthropicCleaner(apiKey string, client httpclient.Client, log Logger) *AnthropicCleaner {
	if client == nil {
		client = httpclient.NewRestyClient(30 * time.Second)
	}
	if log == nil {
		log = noopLogger{}
	}
	return &AnthropicCleaner{
		apiKey: strings.TrimSpace(apiKey),
		url:    anthropicMessagesURL,
		client: client,
		log:    log,
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
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

// Clean asks the API for a summary and degrades to the truncation fallback on
// any error. It never panics and never returns an empty string.
func (c *AnthropicCleaner) Clean(ctx context.Context, title, rawDescription, category string) string {
	summary, err := c.generate(ctx, title, rawDescription, category)
	if err != nil {
		c.log.WarnObj("description cleanup fell back to truncation", "cleaner_fallback", map[string]any{
			"title": title,
			"error": err.Error(),
		})
		return FallbackDescription(rawDescription)
	}
	return summary
}

func (c *AnthropicCleaner) generate(ctx context.Context, title, rawDescription, category string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic api key is not configured")
	}

	prompt := fmt.Sprintf(
		"You are helping catalog free tech education resources. "+
			"Given the course title and raw description below, write a clean, "+
			"engaging 2-sentence summary (max 50 words) suitable for a resource "+
			"directory. Focus on what the learner will gain. Be concise and clear.\n\n"+
			"Category: %s\nTitle: %s\nRaw Description: %s\n\n"+
			"Return only the 2-sentence summary, nothing else.",
		category, title, rawDescription,
	)

	body := anthropicRequest{
		Model:     anthropicModel,
		MaxTokens: anthropicMaxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := c.client.PostJSON(ctx, c.url, headers, body)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("anthropic response status %d", resp.StatusCode())
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(decoded.Content) == 0 {
		return "", fmt.Errorf("anthropic response has no content blocks")
	}

	text := strings.TrimSpace(decoded.Content[0].Text)
	if text == "" {
		return "", fmt.Errorf("anthropic response text is empty")
	}
	return text, nil
}
