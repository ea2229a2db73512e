package customHttpClient

import (
	"net/http"
	"time"

	"github.com/cone-one/ragchat/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// New returns a pooled client with the given per-request timeout. Shared by
// the URL ingestion fetcher and the UI's backend client.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
