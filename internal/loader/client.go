package loader

import (
	"net/http"
	"time"
)

// NewClient returns the HTTP client shared by all loads, with transport
// settings tuned for connection reuse across the content and skybox fetches.
// No overall request timeout is set: an in-flight load runs until its server
// answers or the caller's context ends.
func NewClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
