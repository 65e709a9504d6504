package domain

import "net/http"

// URLResolver maps a named action and a user id to an absolute URL.
type URLResolver interface {
	URLFor(action string, userID string) string
}

type URLResolverFunc func(action string, userID string) string

func (f URLResolverFunc) URLFor(action string, userID string) string {
	return f(action, userID)
}

const (
	ActionGetUser    = "get_user"
	ActionUpdateUser = "update_user"
	ActionDeleteUser = "delete_user"
	ActionListUsers  = "list_users"
	ActionCreateUser = "create_user"
)

var userActions = []struct {
	rel         string
	action      string
	method      string
	description string
}{
	{"self", ActionGetUser, http.MethodGet, "view"},
	{"update", ActionUpdateUser, http.MethodPut, "update"},
	{"delete", ActionDeleteUser, http.MethodDelete, "delete"},
}

// CreateUserLinks returns the self, update and delete links for a user, in
// that order. The id is handed to the resolver as is.
func CreateUserLinks(userID string, resolver URLResolver) []Link {
	links := make([]Link, 0, len(userActions))
	for _, a := range userActions {
		links = append(links, NewLink(a.rel, resolver.URLFor(a.action, userID), a.method, a.description))
	}
	return links
}
