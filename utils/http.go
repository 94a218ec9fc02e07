package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// UserAgent identifies this service on outbound model calls
const UserAgent = "ResumeInsight/1.0"

// NewHTTPClient returns the client handed to the Gemini API backend
// The timeout bounds one model call, retries included only by the caller
func NewHTTPClient(timeout time.Duration) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	base.MaxIdleConnsPerHost = 10

	return &http.Client{
		Timeout:   timeout,
		Transport: defaultHeaders{next: base},
	}
}

// defaultHeaders fills in headers the caller left empty
type defaultHeaders struct {
	next http.RoundTripper
}

func (d defaultHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return d.next.RoundTrip(req)
	}
	// RoundTrippers must not mutate the caller's request
	out := req.Clone(req.Context())
	out.Header.Set("User-Agent", UserAgent)
	return d.next.RoundTrip(out)
}
