package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniadmin/records-console/internal/domain/auth"
)

// mint signs a token the way the records API does. The decoder ignores the
// signature, so any key works for tests.
func mint(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestDecode_ValidToken(t *testing.T) {
	now := time.Now()
	raw := mint(t, jwt.MapClaims{
		"sub":  "a@u.com",
		"role": "ROLE_ADMIN",
		"exp":  now.Add(time.Hour).Unix(),
		"iat":  now.Unix(),
		"id":   float64(42),
	})

	claims, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "a@u.com", claims.Subject)
	assert.Equal(t, "ROLE_ADMIN", claims.Role)
	assert.EqualValues(t, 42, claims.ID)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, time.Second)
	assert.False(t, claims.Expired(now))
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode("not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()

	expired := mint(t, jwt.MapClaims{
		"sub":  "old@u.com",
		"role": "STUDENT",
		"exp":  now.Add(-time.Minute).Unix(),
		"iat":  now.Add(-time.Hour).Unix(),
	})
	claims, err := Decode(expired)
	require.NoError(t, err)
	assert.True(t, claims.Expired(now))

	// No exp claim at all counts as expired.
	noExp := mint(t, jwt.MapClaims{"sub": "x@u.com", "role": "ADMIN"})
	claims, err = Decode(noExp)
	require.NoError(t, err)
	assert.True(t, claims.Expired(now))
}

func TestClaims_Identity_NormalizesRole(t *testing.T) {
	tests := []struct {
		raw  string
		want domainauth.Role
	}{
		{"ADMIN", domainauth.RoleAdmin},
		{"ROLE_ADMIN", domainauth.RoleAdmin},
		{"ROLE_TEACHER", domainauth.RoleTeacher},
		{"STUDENT", domainauth.RoleStudent},
	}
	for _, tt := range tests {
		c := Claims{Subject: "a@u.com", Role: tt.raw}
		id, err := c.Identity()
		require.NoError(t, err)
		assert.Equal(t, tt.want, id.Role, "raw role %q", tt.raw)
		assert.Equal(t, "a@u.com", id.Email)
		assert.Zero(t, id.ID)
		assert.Equal(t, domainauth.StatusActive, id.Status)
	}
}

func TestClaims_Identity_UnknownRole(t *testing.T) {
	c := Claims{Subject: "a@u.com", Role: "ROLE_REGISTRAR"}
	_, err := c.Identity()
	require.Error(t, err)
}
