package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/couchcryptid/rain-alert-service/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const userColumns = `user_id, full_name, email, phone_number, login_method, status, role, created_at, updated_at`

// CreateUser registers an account with a bcrypt password hash.
func (s *Store) CreateUser(ctx context.Context, reg domain.Registration) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: hash password: %w", err)
	}

	query := `
	INSERT INTO mob_app_users (full_name, email, password, phone_number, login_method, status, role)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query,
		strings.TrimSpace(reg.FullName),
		normalizeEmail(reg.Email),
		string(hash),
		domain.DefaultPhoneNumber,
		domain.DefaultLoginMethod,
		domain.DefaultUserStatus,
		domain.DefaultUserRole,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrEmailExists
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the user whose email and password match, or
// domain.ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	query := `SELECT ` + userColumns + `, password FROM mob_app_users WHERE email = $1;`

	var (
		u    domain.User
		hash string
	)
	err := s.db.QueryRowContext(ctx, query, normalizeEmail(email)).Scan(
		&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.LoginMethod,
		&u.Status, &u.Role, &u.CreatedAt, &u.UpdatedAt, &hash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}

// UserByEmail looks up an account by email.
func (s *Store) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM mob_app_users WHERE email = $1;`
	u, err := scanUser(s.db.QueryRowContext(ctx, query, normalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}

// ResetPassword replaces the password of the account with email.
func (s *Store) ResetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}

	query := `UPDATE mob_app_users SET password = $1, updated_at = now() WHERE email = $2;`
	res, err := s.db.ExecContext(ctx, query, string(hash), normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return expectAffected(res, "reset password")
}

func scanUser(row scanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.PhoneNumber, &u.LoginMethod,
		&u.Status, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
