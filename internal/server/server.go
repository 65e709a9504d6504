package server

import (
	"context"
	"crypto/rsa"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/technopolitica/open-users/internal/db"
	"github.com/technopolitica/open-users/internal/domain"
	"github.com/technopolitica/open-users/internal/password"
)

const DefaultTokenTTL = 30 * time.Minute

// Connector hands out a repository for the lifetime of a single request.
// release is called once the request has been served.
type Connector func(ctx context.Context) (repo domain.UserRepository, release func(), err error)

func PoolConnector(pool *pgxpool.Pool) Connector {
	return func(ctx context.Context) (domain.UserRepository, func(), error) {
		conn, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to acquire database connection: %w", err)
		}
		return db.NewRepository(conn), conn.Release, nil
	}
}

type Env struct {
	Connect    Connector
	Hasher     *password.Hasher
	SigningKey *rsa.PrivateKey
	TokenTTL   time.Duration
}

type AuthInfo struct {
	UserID uuid.UUID
	Role   domain.UserRole
}

type authClaims struct {
	jwt.RegisteredClaims
	Role domain.UserRole `json:"role"`
}

type contextKey int

const (
	contextKeyAuth contextKey = iota
	contextKeyRepository
)

func GetAuthInfo(r *http.Request) (auth AuthInfo) {
	auth, ok := r.Context().Value(contextKeyAuth).(AuthInfo)
	if !ok {
		panic("missing required AuthInfo")
	}
	return
}

func GetRepository(r *http.Request) (repo domain.UserRepository) {
	repo, ok := r.Context().Value(contextKeyRepository).(domain.UserRepository)
	if !ok {
		panic("missing required repository")
	}
	return
}

func parseBearerToken(r *http.Request) (bearerToken string, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		err = fmt.Errorf("missing required Authorization header")
		return
	}
	bearerToken, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		err = fmt.Errorf("unsupported or malformed Authorization header (only Bearer scheme is supported)")
		return
	}
	if bearerToken == "" {
		err = fmt.Errorf("malformed Authorization header missing bearer token")
	}
	return
}

func checkAuthentication(r *http.Request, publicKey *rsa.PublicKey) (authInfo AuthInfo, err error) {
	bearerToken, err := parseBearerToken(r)
	if err != nil {
		return
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name, jwt.SigningMethodRS384.Name, jwt.SigningMethodRS512.Name}))
	var claims authClaims
	authToken, err := parser.ParseWithClaims(bearerToken, &claims, func(t *jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		err = fmt.Errorf("invalid auth token: %w", err)
		return
	}
	if !authToken.Valid {
		err = fmt.Errorf("invalid auth token")
		return
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("invalid auth token subject: %w", err)
		return
	}
	authInfo = AuthInfo{UserID: userID, Role: claims.Role}
	return
}

func (env *Env) issueToken(user domain.User) (string, error) {
	ttl := env.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: user.Role,
	})
	return token.SignedString(env.SigningKey)
}

func database(connect Connector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			repo, release, err := connect(ctx)
			if err != nil {
				log.Printf("failed to construct repository: %s", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			defer release()
			r = r.WithContext(context.WithValue(ctx, contextKeyRepository, repo))
			next.ServeHTTP(w, r)
		})
	}
}

func authentication(publicKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authInfo, err := checkAuthentication(r, publicKey)
			if err != nil {
				log.Printf("%s", err)
				w.Header().Set("WWW-Authenticate", `Bearer, charset="UTF-8"`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), contextKeyAuth, authInfo))
			next.ServeHTTP(w, r)
		})
	}
}

func requireUserManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := GetAuthInfo(r)
		if !auth.Role.CanManageUsers() {
			writeError(w, r, http.StatusForbidden, domain.ApiError{
				Type:    domain.ApiErrorTypeForbidden,
				Details: []string{fmt.Sprintf("role %s may not manage users", auth.Role)},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addHostToRequestURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Host = r.Host
		if r.TLS != nil {
			r.URL.Scheme = "https"
		} else {
			r.URL.Scheme = "http"
		}
		next.ServeHTTP(w, r)
	})
}

// FIXME: probably MUCH better to use JWKS here so we don't have to restart the server to change keys.
func New(env *Env) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.AllowContentType("application/json"))
	router.Use(middleware.Heartbeat("/health"))
	router.Use(middleware.Timeout(15 * time.Second))
	router.Use(addHostToRequestURL)
	router.Use(database(env.Connect))

	router.Post(routes[actionRegister], env.register)
	router.Post(routes[actionLogin], env.login)

	router.Group(func(r chi.Router) {
		r.Use(authentication(&env.SigningKey.PublicKey))
		r.Use(requireUserManager)
		r.Mount("/users", env.NewUsersRouter())
	})

	return router
}
