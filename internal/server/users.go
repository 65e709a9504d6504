package server

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/technopolitica/open-users/internal/db"
	"github.com/technopolitica/open-users/internal/domain"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

func parsePaginationParams(r *http.Request) (params domain.PaginationParams, errs []string) {
	var err error
	params.Limit = DefaultPageLimit

	skip := r.URL.Query().Get("skip")
	if skip != "" {
		params.Skip, err = strconv.Atoi(skip)
		if err != nil || params.Skip < 0 {
			errs = append(errs, "skip: must be non-negative integer")
		} else if params.Skip > math.MaxInt32 {
			errs = append(errs, fmt.Sprintf("skip: must be less than or equal to %d", math.MaxInt32))
		}
	}

	limit := r.URL.Query().Get("limit")
	if limit != "" {
		params.Limit, err = strconv.Atoi(limit)
		if err != nil || params.Limit <= 0 {
			errs = append(errs, "limit: must be a positive integer")
		}
		if params.Limit > MaxPageLimit {
			errs = append(errs, fmt.Sprintf("limit: must be less than or equal to %d", MaxPageLimit))
		}
	}
	return
}

func parseUserID(w http.ResponseWriter, r *http.Request) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		writeBadParams(w, r, "user_id: must be a UUID")
		return
	}
	return id, true
}

func generateNickname(id uuid.UUID) string {
	return "user-" + id.String()[:8]
}

// newUser validates and hashes a creation payload. It writes the error
// response itself and returns ok == false when the payload is unusable.
func (env *Env) newUser(w http.ResponseWriter, r *http.Request, payload domain.UserCreate) (user domain.User, ok bool) {
	errs := domain.ValidateUserCreate(payload)
	if len(errs) > 0 {
		writeBadParams(w, r, errs...)
		return
	}
	hashedPassword, err := env.Hasher.Hash(payload.Password)
	if err != nil {
		log.Printf("failed to hash password: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	now := time.Now().UTC()
	user = domain.User{
		ID:                uuid.New(),
		Nickname:          payload.Nickname,
		Email:             payload.Email,
		FirstName:         payload.FirstName,
		LastName:          payload.LastName,
		Bio:               payload.Bio,
		ProfilePictureURL: payload.ProfilePictureURL,
		Role:              payload.Role,
		HashedPassword:    hashedPassword,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if user.Nickname == "" {
		user.Nickname = generateNickname(user.ID)
	}
	return user, true
}

// checkInserted writes the error response for a failed insert.
func checkInserted(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, db.ErrConflict) {
		writeError(w, r, http.StatusBadRequest, domain.ApiError{
			Type:    domain.ApiErrorTypeAlreadyRegistered,
			Details: []string{"email or nickname already in use"},
		})
		return false
	}
	if err != nil {
		log.Printf("failed to insert user: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return false
	}
	return true
}

func fetchUser(w http.ResponseWriter, r *http.Request, id uuid.UUID) (user domain.User, ok bool) {
	user, err := GetRepository(r).FetchUser(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, domain.ApiError{Type: domain.ApiErrorTypeNotFound})
		return
	}
	if err != nil {
		log.Printf("failed to fetch user: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	return user, true
}

// canModify writes a 403 when a non-admin caller targets an admin account.
func canModify(w http.ResponseWriter, r *http.Request, target domain.User) bool {
	if target.Role == domain.UserRoleAdmin && GetAuthInfo(r).Role != domain.UserRoleAdmin {
		writeError(w, r, http.StatusForbidden, domain.ApiError{
			Type:    domain.ApiErrorTypeForbidden,
			Details: []string{"only admins may modify admins"},
		})
		return false
	}
	return true
}

func (env *Env) NewUsersRouter() *chi.Mux {
	usersRouter := chi.NewRouter()

	usersRouter.Get("/", func(w http.ResponseWriter, r *http.Request) {
		params, errs := parsePaginationParams(r)
		if len(errs) > 0 {
			writeBadParams(w, r, errs...)
			return
		}

		page, err := GetRepository(r).ListUsers(r.Context(), domain.ListUsersParams{
			Offset: int32(params.Skip),
			Limit:  int32(params.Limit),
		})
		if err != nil {
			log.Printf("failed execute query: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		resolver := requestResolver(r)
		items := make([]domain.UserResponse, 0, len(page.Items))
		for _, user := range page.Items {
			items = append(items, userResponse(user, resolver))
		}
		writeJSON(w, http.StatusOK, domain.UserListResponse{
			Items: items,
			Total: page.Total,
			Skip:  params.Skip,
			Limit: params.Limit,
			Links: domain.GeneratePaginationLinks(domain.URL{URL: r.URL}, params.Skip, params.Limit, int(page.Total)),
		})
	})

	usersRouter.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var payload domain.UserCreate
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			log.Printf("malformed user payload: %s", err)
			writeBadParams(w, r, "user payload is not valid JSON")
			return
		}
		defer r.Body.Close()

		if payload.Role == domain.UserRoleAnonymous {
			payload.Role = domain.UserRoleAuthenticated
		}
		if payload.Role == domain.UserRoleAdmin && GetAuthInfo(r).Role != domain.UserRoleAdmin {
			writeError(w, r, http.StatusForbidden, domain.ApiError{
				Type:    domain.ApiErrorTypeForbidden,
				Details: []string{"role: only admins may create admins"},
			})
			return
		}
		user, ok := env.newUser(w, r, payload)
		if !ok || !checkInserted(w, r, GetRepository(r).InsertUser(r.Context(), user)) {
			return
		}
		writeJSON(w, http.StatusCreated, userResponse(user, requestResolver(r)))
	})

	usersRouter.Get("/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseUserID(w, r)
		if !ok {
			return
		}
		user, ok := fetchUser(w, r, id)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, userResponse(user, requestResolver(r)))
	})

	usersRouter.Put("/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseUserID(w, r)
		if !ok {
			return
		}
		var update domain.UserUpdate
		err := render.DecodeJSON(r.Body, &update)
		if err != nil {
			log.Printf("malformed user update payload: %s", err)
			writeBadParams(w, r, "user payload is not valid JSON")
			return
		}
		defer r.Body.Close()
		if errs := domain.ValidateUserUpdate(update); len(errs) > 0 {
			writeBadParams(w, r, errs...)
			return
		}

		user, ok := fetchUser(w, r, id)
		if !ok || !canModify(w, r, user) {
			return
		}
		user = update.Apply(user)
		user.UpdatedAt = time.Now().UTC()

		err = GetRepository(r).UpdateUser(r.Context(), user)
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, domain.ApiError{Type: domain.ApiErrorTypeNotFound})
			return
		}
		if errors.Is(err, db.ErrConflict) {
			writeError(w, r, http.StatusBadRequest, domain.ApiError{
				Type:    domain.ApiErrorTypeAlreadyRegistered,
				Details: []string{"email or nickname already in use"},
			})
			return
		}
		if err != nil {
			log.Printf("failed to update user: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, userResponse(user, requestResolver(r)))
	})

	usersRouter.Delete("/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseUserID(w, r)
		if !ok {
			return
		}
		user, ok := fetchUser(w, r, id)
		if !ok || !canModify(w, r, user) {
			return
		}
		err := GetRepository(r).DeleteUser(r.Context(), user.ID)
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, domain.ApiError{Type: domain.ApiErrorTypeNotFound})
			return
		}
		if err != nil {
			log.Printf("failed to delete user: %s", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return usersRouter
}
