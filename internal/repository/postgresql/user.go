package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/ujoors/payroll-backend-go/internal/domain/user"
	"github.com/ujoors/payroll-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	u.id, u.company_id, u.email, u.password_hash, u.role, u.created_at, u.updated_at,
	e.id AS employee_id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		&u.EmployeeID,
	)
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.email = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id AND e.deleted_at IS NULL
		WHERE u.id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (company_id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	created := newUser
	err := q.QueryRow(ctx, query,
		newUser.CompanyID, newUser.Email, newUser.PasswordHash, newUser.Role,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_user_email") {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}
