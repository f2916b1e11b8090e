package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/01moynul/fashionhub/internal/models"
)

// SeedAdmin creates the admin account if it does not exist yet. An existing
// account is left alone so a password changed through the API survives restarts.
func SeedAdmin(ctx context.Context, db *sql.DB, username, password, email string) error {
	var pw models.Password
	if err := pw.Set(password); err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	var emailArg any
	if email != "" {
		emailArg = email
	}

	_, err := db.ExecContext(ctx, `
		INSERT IGNORE INTO admin_users (username, password_hash, email)
		VALUES (?, ?, ?)`,
		username, pw.Hash, emailArg)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
