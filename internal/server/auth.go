package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"
	"github.com/technopolitica/open-users/internal/db"
	"github.com/technopolitica/open-users/internal/domain"
)

// register creates an account for an unauthenticated caller. The very first
// account becomes an admin so a fresh deployment can be bootstrapped.
func (env *Env) register(w http.ResponseWriter, r *http.Request) {
	var payload domain.UserCreate
	err := render.DecodeJSON(r.Body, &payload)
	if err != nil {
		log.Printf("malformed registration payload: %s", err)
		writeBadParams(w, r, "registration payload is not valid JSON")
		return
	}
	defer r.Body.Close()

	user, ok := env.newUser(w, r, payload)
	if !ok {
		return
	}
	user, err = GetRepository(r).RegisterUser(r.Context(), user)
	if !checkInserted(w, r, err) {
		return
	}
	writeJSON(w, http.StatusCreated, userResponse(user, requestResolver(r)))
}

func (env *Env) login(w http.ResponseWriter, r *http.Request) {
	var credentials domain.LoginRequest
	err := render.DecodeJSON(r.Body, &credentials)
	if err != nil {
		log.Printf("malformed login payload: %s", err)
		writeBadParams(w, r, "login payload is not valid JSON")
		return
	}
	defer r.Body.Close()

	invalidCredentials := func() {
		writeError(w, r, http.StatusUnauthorized, domain.ApiError{Type: domain.ApiErrorTypeInvalidCredentials})
	}

	repo := GetRepository(r)
	user, err := repo.FetchUserByEmail(r.Context(), credentials.Email)
	if errors.Is(err, db.ErrNotFound) {
		env.Hasher.VerifyPlaceholder(credentials.Password)
		invalidCredentials()
		return
	}
	if err != nil {
		log.Printf("failed to fetch user: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ok, err := env.Hasher.Verify(credentials.Password, user.HashedPassword)
	if err != nil {
		log.Printf("stored password hash for user %s is unusable: %s", user.ID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		invalidCredentials()
		return
	}

	if needsRehash, _ := env.Hasher.NeedsRehash(user.HashedPassword); needsRehash {
		rehashed, err := env.Hasher.Hash(credentials.Password)
		if err == nil {
			user.HashedPassword = rehashed
			err = repo.UpdateUser(r.Context(), user)
		}
		if err != nil {
			log.Printf("failed to upgrade password hash for user %s: %s", user.ID, err)
		}
	}

	token, err := env.issueToken(user)
	if err != nil {
		log.Printf("failed to sign auth token: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: token, TokenType: "bearer"})
}
