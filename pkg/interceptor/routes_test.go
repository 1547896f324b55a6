package interceptor

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   route
		wantID int
	}{
		{name: "authenticate", method: http.MethodPost, path: "/users/authenticate", want: routeAuthenticate},
		{name: "register", method: http.MethodPost, path: "/users/register", want: routeRegister},
		{name: "list", method: http.MethodGet, path: "/users", want: routeList},
		{name: "get by id", method: http.MethodGet, path: "/users/42", want: routeGetByID, wantID: 42},
		{name: "update", method: http.MethodPut, path: "/users/7", want: routeUpdate, wantID: 7},
		{name: "delete", method: http.MethodDelete, path: "/users/7", want: routeDelete, wantID: 7},

		// The item pattern is a suffix match.
		{name: "prefixed item path", method: http.MethodGet, path: "/api/v1/users/3", want: routeGetByID, wantID: 3},

		// Collection routes are exact, not suffix, matches.
		{name: "prefixed list does not match", method: http.MethodGet, path: "/api/users", want: routeNone},
		{name: "prefixed authenticate does not match", method: http.MethodPost, path: "/api/users/authenticate", want: routeNone},

		{name: "authenticate with GET passes through", method: http.MethodGet, path: "/users/authenticate", want: routeNone},
		{name: "list with POST passes through", method: http.MethodPost, path: "/users", want: routeNone},
		{name: "non-numeric id", method: http.MethodGet, path: "/users/abc", want: routeNone},
		{name: "trailing slash after id", method: http.MethodGet, path: "/users/42/", want: routeNone},
		{name: "mixed id", method: http.MethodGet, path: "/users/42x", want: routeNone},
		{name: "post to item route passes through", method: http.MethodPost, path: "/users/42", want: routeNone},
		{name: "unrelated path", method: http.MethodGet, path: "/products", want: routeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, id := matchRoute(tt.method, tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
