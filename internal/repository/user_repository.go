package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/glassview/internal/model"
)

// UserRepo persists users in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns it with its ID.  The password must
// already be hashed.  A taken username or email yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		u.Username, u.Email, u.PasswordHash, string(u.Role))
	if err != nil {
		if c := classify(err); errors.Is(c, ErrDuplicate) {
			return model.User{}, ErrDuplicate
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	u.ID = id
	return u, nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		u    model.User
		role string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,email,password_hash,role FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("select user: %w", err)
	}
	if u.Role, err = model.ParseRole(role); err != nil {
		return model.User{}, fmt.Errorf("user %d: %w", u.ID, err)
	}
	return u, nil
}
