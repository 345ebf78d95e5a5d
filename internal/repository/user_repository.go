package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/gadget-market/internal/model"
	"github.com/iliyamo/gadget-market/internal/utils"
)

// UserRepo provides access to the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

const userColumns = `id, name, email, password_hash, role, location, phone, created_at, updated_at`

func scanUser(scan func(dest ...any) error) (model.User, error) {
	var u model.User
	err := scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Location, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user and returns its ID.  The password is hashed
// here; the plain text never reaches the table.
func (r *UserRepo) Create(ctx context.Context, name, email, password, role, location, phone string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role, location, phone) VALUES (?,?,?,?,?,?)",
		name, email, hash, role, location, phone)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email).Scan)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id).Scan)
}

// ProfileUpdate lists the optional fields of a profile change.  Nil
// pointers leave the column untouched.  PasswordHash must already be
// hashed by the caller.
type ProfileUpdate struct {
	Name         *string
	Location     *string
	Phone        *string
	PasswordHash *string
}

// UpdateProfile applies a partial update and reports whether any
// column changed.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd ProfileUpdate) (bool, error) {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Location != nil {
		sets = append(sets, "location=?")
		args = append(args, *upd.Location)
	}
	if upd.Phone != nil {
		sets = append(sets, "phone=?")
		args = append(args, *upd.Phone)
	}
	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+", updated_at=NOW() WHERE id=?", args...)
	return err == nil, err
}

// EnsureAdmin creates a bootstrap administrator account when none
// exists yet, so a fresh deployment always has a working admin login.
// Returns true when an account was created.
func (r *UserRepo) EnsureAdmin(ctx context.Context, email, password string, cost int) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role='admin'").Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	_, err := r.Create(ctx, "Administrator", email, password, "admin", "HQ", "", cost)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
