// Package admin holds operator accounts and the login flow that issues the
// bearer tokens the rest of the API checks.
package admin

import (
	"regexp"
	"time"
)

// Admin maps to the admins table. The hash never leaves the process.
type Admin struct {
	ID           int64     `db:"id" json:"-"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)

const minPasswordLen = 6
