package services

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueBuildsClaims(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer(testSecret, "cherryshop")
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return issuedAt })

	user := &models.User{ID: "6f1c", Username: "admin"}
	token, exp, err := issuer.Issue(user, []string{models.RoleAdministrator})
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(5*time.Minute), exp)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Equal(t, "admin", raw["sub"])
	assert.Equal(t, "6f1c", raw["uid"])
	assert.Equal(t, []any{models.RoleAdministrator}, raw["role"])
	assert.NotEmpty(t, raw["jti"])
	assert.EqualValues(t, 300, raw["exp"].(float64)-raw["iat"].(float64))

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.HasRole(models.RoleAdministrator))
	assert.False(t, claims.HasRole(models.RoleStaff))
}

func TestIssueUsesFreshTokenIDs(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "cherryshop")
	require.NoError(t, err)
	user := &models.User{ID: "1", Username: "staff"}

	first, _, err := issuer.Issue(user, nil)
	require.NoError(t, err)
	second, _, err := issuer.Issue(user, nil)
	require.NoError(t, err)

	a, err := issuer.Parse(first)
	require.NoError(t, err)
	b, err := issuer.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Empty(t, a.Roles)
}

func TestParseRejectsTampering(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, "cherryshop")
	require.NoError(t, err)
	token, _, err := issuer.Issue(&models.User{ID: "1", Username: "staff"}, []string{models.RoleStaff})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	payload[len(payload)/2] ^= 0x01
	forged := parts[0] + "." + base64.RawURLEncoding.EncodeToString(payload) + "." + parts[2]
	_, err = issuer.Parse(forged)
	assert.Error(t, err)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	header[len(header)-2] ^= 0x01
	forged = base64.RawURLEncoding.EncodeToString(header) + "." + parts[1] + "." + parts[2]
	_, err = issuer.Parse(forged)
	assert.Error(t, err)

	other, err := NewTokenIssuer("another-secret-another-secret-xx", "cherryshop")
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredAndForeignIssuer(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer(testSecret, "cherryshop")
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return issuedAt })
	token, _, err := issuer.Issue(&models.User{ID: "1", Username: "staff"}, nil)
	require.NoError(t, err)

	issuer.WithClock(func() time.Time { return issuedAt.Add(5*time.Minute + time.Second) })
	_, err = issuer.Parse(token)
	assert.Error(t, err)

	foreign, err := NewTokenIssuer(testSecret, "someone-else")
	require.NoError(t, err)
	foreign.WithClock(func() time.Time { return issuedAt })
	_, err = foreign.Parse(token)
	assert.Error(t, err)
}

func TestNewTokenIssuerNeedsSecret(t *testing.T) {
	_, err := NewTokenIssuer("", "cherryshop")
	assert.Error(t, err)
}
