package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/fashionhub/internal/middleware"
	"github.com/01moynul/fashionhub/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Admin Authentication ---
//

// LoginInput defines the JSON input for the admin login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /api/admin/login
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	// 2. --- Find Admin ---
	var admin models.AdminUser
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT admin_id, username, password_hash, email FROM admin_users WHERE username = ?",
		input.Username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Email)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Msg("admin login lookup")
		fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	// 3. --- Check Password ---
	pw := models.Password{Hash: admin.PasswordHash}
	match, err := pw.Matches(input.Password)
	if err != nil {
		h.Log.Error().Err(err).Str("username", admin.Username).Msg("admin password compare")
		fail(c, http.StatusInternalServerError, "Login failed")
		return
	}
	if !match {
		h.Log.Warn().Str("username", input.Username).Msg("admin login rejected")
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 4. --- Issue Token ---
	token, err := h.Tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		h.Log.Error().Err(err).Msg("issue admin token")
		fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	h.Log.Info().Int64("admin_id", admin.ID).Msg("admin logged in")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin":   admin,
	})
}

// ChangePasswordInput defines the JSON input for changing the admin password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword is the handler for POST /api/admin/change-password
func (h *Handlers) ChangePassword(c *gin.Context) {
	adminID := c.GetInt64(middleware.AdminIDKey)

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Current password and a new password of at least 6 characters are required")
		return
	}

	ctx := c.Request.Context()
	var current models.Password
	err := h.DB.QueryRowContext(ctx,
		"SELECT password_hash FROM admin_users WHERE admin_id = ?", adminID).Scan(&current.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		fail(c, http.StatusNotFound, "Admin not found")
		return
	}
	if err != nil {
		h.Log.Error().Err(err).Int64("admin_id", adminID).Msg("load admin password")
		fail(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	match, err := current.Matches(input.CurrentPassword)
	if err != nil {
		h.Log.Error().Err(err).Int64("admin_id", adminID).Msg("compare admin password")
		fail(c, http.StatusInternalServerError, "Failed to change password")
		return
	}
	if !match {
		fail(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	var next models.Password
	if err := next.Set(input.NewPassword); err != nil {
		h.Log.Error().Err(err).Msg("hash new admin password")
		fail(c, http.StatusInternalServerError, "Failed to change password")
		return
	}
	if _, err := h.DB.ExecContext(ctx,
		"UPDATE admin_users SET password_hash = ? WHERE admin_id = ?", next.Hash, adminID); err != nil {
		h.Log.Error().Err(err).Int64("admin_id", adminID).Msg("update admin password")
		fail(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
