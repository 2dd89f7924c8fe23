package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rights360/rights360/internal/platform"
)

const bcryptCost = 12

// User is the account profile without the password hash.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
}

// Register creates a new account with role "user". Duplicate username or
// email is ErrConflict.
func Register(ctx context.Context, db *sql.DB, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return User{}, fmt.Errorf("%w: username and email required", platform.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: malformed email", platform.ErrInvalidInput)
	}
	if len(password) < 6 {
		return User{}, fmt.Errorf("%w: password must be at least 6 characters", platform.ErrInvalidInput)
	}

	var exists int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1 OR email=$2`, username, email).Scan(&exists)
	if err == nil {
		return User{}, fmt.Errorf("%w: username or email already taken", platform.ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      "user",
		CreatedAt: time.Now().Unix(),
	}
	// The unique constraints still win a register/register race; surface
	// that as the same conflict.
	_, err = db.ExecContext(ctx, `INSERT INTO users (id,username,email,password_hash,role,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`, u.ID, u.Username, u.Email, string(hash), u.Role, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, fmt.Errorf("%w: username or email already taken", platform.ErrConflict)
		}
		return User{}, err
	}
	return u, nil
}

// Authenticate verifies credentials by username or email and returns the
// profile. Bad credentials are ErrNotFound so callers cannot tell a wrong
// password from an unknown account.
func Authenticate(ctx context.Context, db *sql.DB, usernameOrEmail, password string) (User, error) {
	ident := strings.TrimSpace(usernameOrEmail)
	var u User
	var hash string
	err := db.QueryRowContext(ctx,
		`SELECT id,username,email,password_hash,role,created_at FROM users WHERE username=$1 OR email=$2`,
		ident, strings.ToLower(ident)).Scan(&u.ID, &u.Username, &u.Email, &hash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("credentials: %w", platform.ErrNotFound)
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, fmt.Errorf("credentials: %w", platform.ErrNotFound)
	}
	return u, nil
}

// GetUser loads a profile by id.
func GetUser(ctx context.Context, db *sql.DB, id string) (User, error) {
	var u User
	err := db.QueryRowContext(ctx,
		`SELECT id,username,email,role,created_at FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("user: %w", platform.ErrNotFound)
		}
		return User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
