package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/technopolitica/open-users/internal/domain"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

// routes maps action names to the path patterns they are served on, so links
// can be generated from the action alone.
var routes = map[string]string{
	actionRegister:          "/register",
	actionLogin:             "/login",
	domain.ActionListUsers:  "/users",
	domain.ActionCreateUser: "/users",
	domain.ActionGetUser:    "/users/{user_id}",
	domain.ActionUpdateUser: "/users/{user_id}",
	domain.ActionDeleteUser: "/users/{user_id}",
}

// requestResolver resolves actions against the scheme and host the request came in on.
func requestResolver(r *http.Request) domain.URLResolver {
	base := url.URL{Scheme: r.URL.Scheme, Host: r.URL.Host}
	return domain.URLResolverFunc(func(action string, userID string) string {
		pattern, ok := routes[action]
		if !ok {
			return ""
		}
		path := strings.ReplaceAll(pattern, "{user_id}", url.PathEscape(userID))
		return base.String() + path
	})
}
