package httpclient

import (
	"net/http"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
)

// New crea el *http.Client que usan los adapters que salen por HTTP (S3).
func New(timeout time.Duration) *http.Client {
	return NewWithTransport(timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}
