package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewHTTPClient builds the shared outbound client. The chatbot upstream
// is called once per user message, so idle connections are kept warm.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
