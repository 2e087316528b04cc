package model

import "time"

// User represents an application user record as stored in the `users`
// table. Passwords are stored as bcrypt hashes only. NicNo and
// ContactNo are optional but unique when present.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name of the user.
//	NicNo        – national identity card number (optional, unique).
//	ContactNo    – phone number (optional, unique).
//	Email        – unique email address used for sign-in.
//	PasswordHash – bcrypt hashed password.
//	Role         – role name (ADMIN or TRAINEE).
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	NicNo        string    // users.nic_no (empty when not provided)
	ContactNo    string    // users.contact_no (empty when not provided)
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Roles understood by the role middleware.
const (
	RoleAdmin   = "ADMIN"
	RoleTrainee = "TRAINEE"
)

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user; only the SHA-256 hash of the token
// value is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
