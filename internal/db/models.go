package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/technopolitica/open-users/internal/domain"
)

type UserDTO struct {
	ID                uuid.UUID       `db:"id"`
	Nickname          string          `db:"nickname"`
	Email             string          `db:"email"`
	FirstName         *string         `db:"first_name"`
	LastName          *string         `db:"last_name"`
	Bio               *string         `db:"bio"`
	ProfilePictureURL *string         `db:"profile_picture_url"`
	Role              domain.UserRole `db:"role"`
	HashedPassword    string          `db:"hashed_password"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dtoFromUser(user domain.User) UserDTO {
	return UserDTO{
		ID:                user.ID,
		Nickname:          user.Nickname,
		Email:             user.Email,
		FirstName:         nullable(user.FirstName),
		LastName:          nullable(user.LastName),
		Bio:               nullable(user.Bio),
		ProfilePictureURL: nullable(user.ProfilePictureURL),
		Role:              user.Role,
		HashedPassword:    user.HashedPassword,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

func userFromDTO(dto UserDTO) domain.User {
	return domain.User{
		ID:                dto.ID,
		Nickname:          dto.Nickname,
		Email:             dto.Email,
		FirstName:         deref(dto.FirstName),
		LastName:          deref(dto.LastName),
		Bio:               deref(dto.Bio),
		ProfilePictureURL: deref(dto.ProfilePictureURL),
		Role:              dto.Role,
		HashedPassword:    dto.HashedPassword,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	}
}
