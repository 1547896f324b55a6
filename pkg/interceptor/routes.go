package interceptor

import (
	"net/http"
	"regexp"
	"strconv"
)

// route identifies which fake endpoint a request targets.
type route int

const (
	routeNone route = iota
	routeAuthenticate
	routeRegister
	routeList
	routeGetByID
	routeUpdate
	routeDelete
)

func (r route) String() string {
	switch r {
	case routeAuthenticate:
		return "authenticate"
	case routeRegister:
		return "register"
	case routeList:
		return "list"
	case routeGetByID:
		return "get-by-id"
	case routeUpdate:
		return "update"
	case routeDelete:
		return "delete"
	default:
		return "none"
	}
}

// userItemPath matches item-level routes: the path must end in
// "/users/" followed by one or more decimal digits. The pattern is a
// suffix match, so "/api/users/42" is also an item route.
var userItemPath = regexp.MustCompile(`/users/(\d+)$`)

// matchRoute classifies (method, path) into exactly one route. The
// second return is the parsed item id for item-level routes, zero
// otherwise. Collection-level routes use exact path comparison and
// take priority over the numeric-suffix pattern.
func matchRoute(method, path string) (route, int) {
	switch {
	case path == "/users/authenticate" && method == http.MethodPost:
		return routeAuthenticate, 0
	case path == "/users/register" && method == http.MethodPost:
		return routeRegister, 0
	case path == "/users" && method == http.MethodGet:
		return routeList, 0
	}

	m := userItemPath.FindStringSubmatch(path)
	if m == nil {
		return routeNone, 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits too long to fit an int. Treat as unmatched.
		return routeNone, 0
	}

	switch method {
	case http.MethodGet:
		return routeGetByID, id
	case http.MethodPut:
		return routeUpdate, id
	case http.MethodDelete:
		return routeDelete, id
	}
	return routeNone, 0
}
