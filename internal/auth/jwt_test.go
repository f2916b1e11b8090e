package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	iss := NewIssuer("test-secret", 8*time.Hour)

	token, err := iss.Issue(3, "admin")
	require.NoError(t, err)

	claims, err := iss.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "3", claims.Subject)
}

func TestValidate_Expired(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := iss.Issue(1, "admin")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewIssuer("one", time.Hour).Issue(1, "admin")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{AdminID: 1, Username: "admin"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewIssuer("secret", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := NewIssuer("secret", time.Hour).Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
