//go:generate go run github.com/abice/go-enum@v0.5.6 --marshal --sql

package domain

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ENUM(anonymous, authenticated, manager, admin)
type UserRole int

// CanManageUsers reports whether the role may list and modify other users.
func (r UserRole) CanManageUsers() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}

type User struct {
	ID                uuid.UUID `json:"id"`
	Nickname          string    `json:"nickname"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	Role              UserRole  `json:"role"`
	HashedPassword    string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type UserCreate struct {
	Email             string   `json:"email"`
	Nickname          string   `json:"nickname"`
	Password          string   `json:"password"`
	FirstName         string   `json:"first_name,omitempty"`
	LastName          string   `json:"last_name,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	ProfilePictureURL string   `json:"profile_picture_url,omitempty"`
	Role              UserRole `json:"role,omitempty"`
}

// UserUpdate carries a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Email             *string `json:"email,omitempty"`
	Nickname          *string `json:"nickname,omitempty"`
	FirstName         *string `json:"first_name,omitempty"`
	LastName          *string `json:"last_name,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

func (update UserUpdate) IsEmpty() bool {
	return update == UserUpdate{}
}

func (update UserUpdate) Apply(user User) User {
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Nickname != nil {
		user.Nickname = *update.Nickname
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfilePictureURL != nil {
		user.ProfilePictureURL = *update.ProfilePictureURL
	}
	return user
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	User
	Links []Link `json:"links"`
}

type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int64          `json:"total"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
	Links []Link         `json:"links"`
}

const minPasswordLength = 8

var nicknamePattern = regexp.MustCompile(`^[\w-]{3,50}$`)

func validateEmail(email string) []string {
	if email == "" {
		return []string{"email: missing required field"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return []string{"email: must be a valid email address"}
	}
	return nil
}

func validateNickname(nickname string) []string {
	if !nicknamePattern.MatchString(nickname) {
		return []string{"nickname: must be 3-50 letters, digits, underscores or hyphens"}
	}
	return nil
}

func ValidateUserCreate(user UserCreate) []string {
	var errs []string
	errs = append(errs, validateEmail(user.Email)...)
	if user.Nickname != "" {
		errs = append(errs, validateNickname(user.Nickname)...)
	}
	if len(user.Password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("password: must be at least %d characters", minPasswordLength))
	}
	return errs
}

func ValidateUserUpdate(update UserUpdate) []string {
	var errs []string
	if update.IsEmpty() {
		errs = append(errs, "at least one field must be provided for update")
	}
	if update.Email != nil {
		errs = append(errs, validateEmail(*update.Email)...)
	}
	if update.Nickname != nil {
		errs = append(errs, validateNickname(*update.Nickname)...)
	}
	return errs
}

type ListUsersParams struct {
	Offset int32
	Limit  int32
}

type UserRepository interface {
	FetchUser(ctx context.Context, id uuid.UUID) (User, error)
	FetchUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, params ListUsersParams) (Page[User], error)
	InsertUser(ctx context.Context, user User) error
	// RegisterUser inserts user as an admin when the store is empty and as an
	// authenticated user otherwise, deciding the role and inserting atomically.
	RegisterUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
