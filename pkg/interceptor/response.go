package interceptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/beminee/mockauth/pkg/userapi"
)

// jsonResponse wraps a status code and payload into a synthetic
// *http.Response, sleeping for a random interval first to emulate the
// round-trip latency of a real network call.
func (i *Interceptor) jsonResponse(req *http.Request, status int, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}

	if err := i.delay.Sleep(req.Context(), i.minDelay, i.maxDelay); err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json; charset=utf-8")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

// ok returns 200 with the given payload, defaulting to an empty JSON
// object when payload is nil.
func (i *Interceptor) ok(req *http.Request, payload any) (*http.Response, error) {
	if payload == nil {
		payload = struct{}{}
	}
	return i.jsonResponse(req, http.StatusOK, payload)
}

// badRequest returns 400 with a structured message.
func (i *Interceptor) badRequest(req *http.Request, message string) (*http.Response, error) {
	return i.jsonResponse(req, http.StatusBadRequest, userapi.ErrorResponse{Message: message})
}

// unauthorized returns 401 with the fixed "Unauthorized" message.
func (i *Interceptor) unauthorized(req *http.Request) (*http.Response, error) {
	return i.jsonResponse(req, http.StatusUnauthorized, userapi.ErrorResponse{Message: "Unauthorized"})
}
