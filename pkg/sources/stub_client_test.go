package sources

import (
	"context"
	"errors"

	"github.com/learnstack-hq/learnstack-course-harvester/pkg/httpclient"
)

// stubClient is the shared fake HTTP client for fetcher tests.
type stubClient struct {
	body    []byte
	status  int
	err     error
	lastURL string
}

type stubResponse struct {
	body   []byte
	status int
}

func (r stubResponse) Body() []byte    { return r.body }
func (r stubResponse) StatusCode() int { return r.status }

func (c *stubClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.lastURL = url
	if c.err != nil {
		return nil, c.err
	}
	return stubResponse{body: c.body, status: c.status}, nil
}

func (c *stubClient) PostJSON(context.Context, string, map[string]string, any) (httpclient.Response, error) {
	return nil, errors.New("unexpected POST in fetcher test")
}
