package db

import (
	"context"
	"errors"
	"fmt"

	_ "embed"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/technopolitica/open-users/internal/domain"
)

func collectOneUser(rows pgx.Rows) (user domain.User, err error) {
	userDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[UserDTO])
	if err != nil {
		err = fmt.Errorf("failed to map row to UserDTO: %w", err)
		return
	}
	if len(userDTOs) == 0 {
		err = ErrNotFound
		return
	}
	user = userFromDTO(userDTOs[0])
	return
}

//go:embed queries/fetch-user.sql
var fetchUserQuery string

func (repo Repository) FetchUser(ctx context.Context, id uuid.UUID) (user domain.User, err error) {
	rows, err := repo.Query(ctx, fetchUserQuery, pgx.NamedArgs{"id": id})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	return collectOneUser(rows)
}

//go:embed queries/fetch-user-by-email.sql
var fetchUserByEmailQuery string

func (repo Repository) FetchUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	rows, err := repo.Query(ctx, fetchUserByEmailQuery, pgx.NamedArgs{"email": email})
	if err != nil {
		err = fmt.Errorf("failed to execute query: %w", err)
		return
	}
	return collectOneUser(rows)
}

//go:embed queries/list-users.sql
var listUsersQuery string

//go:embed queries/count-users.sql
var countUsersQuery string

func (repo Repository) ListUsers(ctx context.Context, arg domain.ListUsersParams) (page domain.Page[domain.User], err error) {
	err = repo.WithinTransaction(ctx, func(tx pgx.Tx) (err error) {
		rows, err := tx.Query(ctx, listUsersQuery, pgx.NamedArgs{"limit": arg.Limit, "offset": arg.Offset})
		if err != nil {
			return
		}
		defer rows.Close()
		userDTOs, err := pgx.CollectRows(rows, pgx.RowToStructByName[UserDTO])
		if err != nil {
			return
		}
		page.Items = make([]domain.User, 0, len(userDTOs))
		for _, dto := range userDTOs {
			page.Items = append(page.Items, userFromDTO(dto))
		}

		err = tx.QueryRow(ctx, countUsersQuery).Scan(&page.Total)
		return
	})
	if err != nil {
		err = fmt.Errorf("failed to list users: %w", err)
	}
	return
}

func userArgs(dto UserDTO) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                  dto.ID,
		"nickname":            dto.Nickname,
		"email":               dto.Email,
		"first_name":          dto.FirstName,
		"last_name":           dto.LastName,
		"bio":                 dto.Bio,
		"profile_picture_url": dto.ProfilePictureURL,
		"role":                dto.Role,
		"hashed_password":     dto.HashedPassword,
		"created_at":          dto.CreatedAt,
		"updated_at":          dto.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

//go:embed queries/insert-user.sql
var insertUserQuery string

func (repo Repository) InsertUser(ctx context.Context, user domain.User) error {
	_, err := repo.Exec(ctx, insertUserQuery, userArgs(dtoFromUser(user)))
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

//go:embed queries/lock-users.sql
var lockUsersQuery string

func (repo Repository) RegisterUser(ctx context.Context, user domain.User) (registered domain.User, err error) {
	err = repo.WithinTransaction(ctx, func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx, lockUsersQuery)
		if err != nil {
			return
		}
		var total int64
		err = tx.QueryRow(ctx, countUsersQuery).Scan(&total)
		if err != nil {
			return
		}
		user.Role = domain.UserRoleAuthenticated
		if total == 0 {
			user.Role = domain.UserRoleAdmin
		}
		_, err = tx.Exec(ctx, insertUserQuery, userArgs(dtoFromUser(user)))
		return
	})
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrConflict
		} else {
			err = fmt.Errorf("failed to register user: %w", err)
		}
		return
	}
	registered = user
	return
}

//go:embed queries/update-user.sql
var updateUserQuery string

func (repo Repository) UpdateUser(ctx context.Context, user domain.User) error {
	res, err := repo.Exec(ctx, updateUserQuery, userArgs(dtoFromUser(user)))
	if err != nil && isUniqueViolation(err) {
		return ErrConflict
	}
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}

//go:embed queries/delete-user.sql
var deleteUserQuery string

func (repo Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := repo.Exec(ctx, deleteUserQuery, pgx.NamedArgs{"id": id})
	if err == nil && res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return err
}
