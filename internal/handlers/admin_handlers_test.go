package handlers

import (
	"database/sql/driver"
	"net/http"
	"regexp"
	"testing"

	"github.com/01moynul/fashionhub/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminLookupSQL = "SELECT admin_id, username, password_hash, email FROM admin_users WHERE username = ?"

func hashOf(t *testing.T, plaintext string) string {
	t.Helper()
	var pw models.Password
	require.NoError(t, pw.Set(plaintext))
	return pw.Hash
}

// bcryptOf matches a bcrypt hash of the given plaintext.
type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	hash, ok := v.(string)
	if !ok {
		return false
	}
	ok, err := (&models.Password{Hash: hash}).Matches(string(b))
	return err == nil && ok
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta(adminLookupSQL)).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"admin_id", "username", "password_hash", "email"}).
			AddRow(1, "admin", hashOf(t, "s3cret!"), "owner@example.com"))

	w := env.do(http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "s3cret!"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"success": true,
		"token": "token-for-admin",
		"admin": {"id": 1, "username": "admin", "email": "owner@example.com"}
	}`, w.Body.String())
}

func TestLogin_Rejected(t *testing.T) {
	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectQuery(regexp.QuoteMeta(adminLookupSQL)).WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"admin_id", "username", "password_hash", "email"}).
				AddRow(1, "admin", hashOf(t, "s3cret!"), nil))

		w := env.do(http.MethodPost, "/api/admin/login", map[string]string{"username": "admin", "password": "guess"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode(t, w)["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectQuery(regexp.QuoteMeta(adminLookupSQL)).WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"admin_id", "username", "password_hash", "email"}))

		w := env.do(http.MethodPost, "/api/admin/login", map[string]string{"username": "ghost", "password": "x"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode(t, w)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/admin/login", map[string]string{"username": "admin"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("SELECT password_hash FROM admin_users WHERE admin_id = ?")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hashOf(t, "old-pass")))
	env.mock.ExpectExec(regexp.QuoteMeta("UPDATE admin_users SET password_hash = ? WHERE admin_id = ?")).
		WithArgs(bcryptOf("new-pass"), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := env.do(http.MethodPost, "/api/admin/change-password", map[string]string{
		"currentPassword": "old-pass", "newPassword": "new-pass",
	})

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestChangePassword_Rejected(t *testing.T) {
	t.Run("wrong current password", func(t *testing.T) {
		env := newTestEnv(t)
		env.mock.ExpectQuery(regexp.QuoteMeta("SELECT password_hash FROM admin_users")).WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(hashOf(t, "old-pass")))

		w := env.do(http.MethodPost, "/api/admin/change-password", map[string]string{
			"currentPassword": "nope", "newPassword": "new-pass",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Current password is incorrect", decode(t, w)["error"])
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})

	t.Run("new password too short", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(http.MethodPost, "/api/admin/change-password", map[string]string{
			"currentPassword": "old-pass", "newPassword": "12345",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, env.mock.ExpectationsWereMet())
	})
}

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "pending", "revenue"}).AddRow(12, 4, "1234.50"))
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WithArgs(LowStockThreshold).
		WillReturnRows(sqlmock.NewRows([]string{"active", "low"}).AddRow(30, 2))
	env.mock.ExpectQuery(regexp.QuoteMeta("FROM contact_messages WHERE status = 'new'")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(5))

	w := env.do(http.MethodGet, "/api/admin/dashboard-stats", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"pendingOrders":4,"totalOrders":12,"revenue":"1234.5","activeProducts":30,
		"lowStockProducts":2,"newContactMessages":5}`, w.Body.String())
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
