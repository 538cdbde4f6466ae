package httpclient

import (
	"net/http"
	"time"
)

// Doer is the minimal HTTP execution interface the upstream client depends
// on. It allows swapping in test doubles without a real network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StandardClient wraps the standard http.Client
type StandardClient struct {
	client *http.Client
}

// NewStandardClient creates an HTTP client with the given overall timeout.
// The timeout covers connection, request, and body read time.
func NewStandardClient(timeout time.Duration) *StandardClient {
	return &StandardClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Do executes an HTTP request
func (c *StandardClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
