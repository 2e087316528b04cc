package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/trainee-seat-reservation/internal/database"
	"github.com/iliyamo/trainee-seat-reservation/internal/model"
)

// UserRepo provides persistence for application users.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, name, COALESCE(nic_no, ''), COALESCE(contact_no, ''), email,
	password_hash, role, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.NicNo, &u.ContactNo, &u.Email,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// nullable maps "" to NULL so the sparse unique indexes on nic_no and
// contact_no ignore users who never provided them.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Create inserts a user and populates its ID. The email, NIC and
// contact unique indexes decide the conflict error.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name, nic_no, contact_no, email, password_hash, role)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, nullable(u.NicNo), nullable(u.ContactNo), u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok {
			if idx == "uq_user_email" {
				return ErrEmailExists
			}
			return ErrUserConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email = ? LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// List returns all users ordered by name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userCols+` FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateProfile updates a user's identity fields. Bookings keep their
// snapshot; only the live user row changes.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET name = ?, nic_no = ?, contact_no = ?, email = ? WHERE id = ?`,
		u.Name, nullable(u.NicNo), nullable(u.ContactNo), u.Email, u.ID)
	if err != nil {
		if idx, ok := database.DuplicateKey(err); ok {
			if idx == "uq_user_email" {
				return ErrEmailExists
			}
			return ErrUserConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}
