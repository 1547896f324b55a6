package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// passthrough builds the inner transport for routes the interceptor
// does not handle. With an upstream configured, requests are rewritten
// to it and sent over the default transport; without one, every
// unmatched request is answered 502.
func passthrough(upstream string) (http.RoundTripper, error) {
	if upstream == "" {
		return noUpstream{}, nil
	}
	target, err := url.Parse(upstream)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL %q: %w", upstream, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("upstream URL %q must use http or https", upstream)
	}
	return &upstreamTransport{base: http.DefaultTransport, target: target}, nil
}

// upstreamTransport rewrites requests onto a fixed upstream host,
// keeping path and query intact.
type upstreamTransport struct {
	base   http.RoundTripper
	target *url.URL
}

func (t *upstreamTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	if t.target.Path != "" && t.target.Path != "/" {
		out.URL.Path = strings.TrimSuffix(t.target.Path, "/") + out.URL.Path
	}
	out.Host = t.target.Host
	return t.base.RoundTrip(out)
}

// noUpstream rejects every request with a synthetic 502.
type noUpstream struct{}

func (noUpstream) RoundTrip(req *http.Request) (*http.Response, error) {
	body := []byte(`{"message":"no upstream configured"}`)
	header := make(http.Header)
	header.Set("Content-Type", "application/json; charset=utf-8")
	return &http.Response{
		Status:        "502 Bad Gateway",
		StatusCode:    http.StatusBadGateway,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}

// copyBody streams a response body to the client.
func copyBody(w io.Writer, resp *http.Response) (int64, error) {
	return io.Copy(w, resp.Body)
}
