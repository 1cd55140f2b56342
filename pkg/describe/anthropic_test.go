package describe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/learnstack-hq/learnstack-course-harvester/pkg/httpclient"
)

type stubResponse struct {
	body   []byte
	status int
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

type stubClient struct {
	resp     stubResponse
	err      error
	lastURL  string
	lastBody any
	headers  map[string]string
}

func (c *stubClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.lastURL = url
	return c.resp, c.err
}

func (c *stubClient) PostJSON(_ context.Context, url string, headers map[string]string, body any) (httpclient.Response, error) {
	c.lastURL = url
	c.lastBody = body
	c.headers = headers
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func messagesBody(text string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return raw
}

func TestAnthropicCleanerReturnsSummary(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: messagesBody(" A tidy summary. Learn things. "), status: http.StatusOK}}
	c := NewAnthropicCleaner("key", client, nil)

	got := c.Clean(context.Background(), "Intro to Go", "raw text", "Web Development")
	if got != "A tidy summary. Learn things." {
		t.Fatalf("unexpected summary %q", got)
	}

	if client.headers["x-api-key"] != "key" {
		t.Error("api key header missing")
	}
	if client.headers["anthropic-version"] == "" {
		t.Error("anthropic-version header missing")
	}

	req, ok := client.lastBody.(anthropicRequest)
	if !ok {
		t.Fatalf("unexpected request body type %T", client.lastBody)
	}
	if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Intro to Go") {
		t.Error("prompt should carry the course title")
	}
	if !strings.Contains(req.Messages[0].Content, "Web Development") {
		t.Error("prompt should carry the category")
	}
}

func TestAnthropicCleanerFallsBackOnTransportError(t *testing.T) {
	client := &stubClient{err: errors.New("dial tcp: timeout")}
	c := NewAnthropicCleaner("key", client, nil)

	raw := strings.Repeat("r", 250)
	got := c.Clean(context.Background(), "t", raw, "c")
	if got != raw[:200] {
		t.Fatalf("expected truncation fallback, got %d chars", len(got))
	}
}

func TestAnthropicCleanerFallsBackOnErrorStatus(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: []byte(`{"error":"overloaded"}`), status: http.StatusTooManyRequests}}
	c := NewAnthropicCleaner("key", client, nil)

	if got := c.Clean(context.Background(), "t", "raw", "c"); got != "raw" {
		t.Fatalf("expected raw passthrough fallback, got %q", got)
	}
}

func TestAnthropicCleanerFallsBackOnEmptyContent(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: []byte(`{"content":[]}`), status: http.StatusOK}}
	c := NewAnthropicCleaner("key", client, nil)

	if got := c.Clean(context.Background(), "t", "", "c"); got != Placeholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestAnthropicCleanerMissingKeyNeverCallsAPI(t *testing.T) {
	client := &stubClient{resp: stubResponse{body: messagesBody("should not be used"), status: http.StatusOK}}
	c := NewAnthropicCleaner("   ", client, nil)

	if got := c.Clean(context.Background(), "t", "raw", "c"); got != "raw" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if client.lastURL != "" {
		t.Error("no API call should happen without a key")
	}
}
