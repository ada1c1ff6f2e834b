package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	BcryptCost = bcrypt.MinCost
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", ""))
}

func newService() *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "test"})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newService()
	token, expiresIn, err := svc.GenerateAccessToken("student-1", RoleStudent, "Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.Subject)
	assert.Equal(t, RoleStudent, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredToken(t *testing.T) {
	svc := newService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateAccessToken("admin", RoleAdmin, "")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenFromOtherSecret(t *testing.T) {
	token, _, err := newService().GenerateAccessToken("admin", RoleAdmin, "")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	_, err = other.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	tok, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractBearerToken("")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
