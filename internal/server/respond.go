package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/technopolitica/open-users/internal/domain"
)

// writeJSON is used for anything carrying links: render.JSON escapes HTML
// characters (including '&'), which mangles query strings.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(body)
	if err != nil {
		log.Printf("failed to encode response: %s", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, apiErr domain.ApiError) {
	render.Status(r, status)
	render.JSON(w, r, apiErr)
}

func writeBadParams(w http.ResponseWriter, r *http.Request, details ...string) {
	writeError(w, r, http.StatusBadRequest, domain.ApiError{
		Type:    domain.ApiErrorTypeBadParam,
		Details: details,
	})
}

func userResponse(user domain.User, resolver domain.URLResolver) domain.UserResponse {
	return domain.UserResponse{
		User:  user,
		Links: domain.CreateUserLinks(user.ID.String(), resolver),
	}
}
