package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/session"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// BearerTransport reads the token from Source at dispatch time and attaches it
// as an Authorization header. When no token is stored the request leaves
// without any Authorization header. It never retries or refreshes.
type BearerTransport struct {
	Base   http.RoundTripper
	Source session.TokenSource
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request, so work on a clone
	out := req.Clone(req.Context())

	if token, ok := t.Source.Token(); ok {
		out.Header.Set(headerAuthorization, fmt.Sprintf("%s%s", bearerPrefix, token))
	} else {
		out.Header.Del(headerAuthorization)
	}

	return base(t.Base).RoundTrip(out)
}

// RequestIDTransport tags each request with a unique X-Request-ID unless the
// caller already set one
type RequestIDTransport struct {
	Base http.RoundTripper
}

func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(headerRequestID) != "" {
		return base(t.Base).RoundTrip(req)
	}

	out := req.Clone(req.Context())
	out.Header.Set(headerRequestID, uuid.NewString())
	return base(t.Base).RoundTrip(out)
}

// LoggingTransport writes one debug line per exchange. Headers are never logged.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger zerolog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := base(t.Base).RoundTrip(req)

	event := t.Logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", req.Header.Get(headerRequestID)).
		Bool("authenticated", req.Header.Get(headerAuthorization) != "").
		Dur("duration", time.Since(start))

	if err != nil {
		event.Err(err).Msg("HTTP request failed")
		return nil, err
	}

	event.Int("status", resp.StatusCode).Msg("HTTP request")
	return resp, nil
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

// NewPipeline assembles the request stages in dispatch order:
// request id, bearer injection, logging, then the network transport.
func NewPipeline(network http.RoundTripper, creds session.TokenSource, logger zerolog.Logger) http.RoundTripper {
	var rt http.RoundTripper = &LoggingTransport{Base: network, Logger: logger}
	rt = &BearerTransport{Base: rt, Source: creds}
	rt = &RequestIDTransport{Base: rt}
	return rt
}
