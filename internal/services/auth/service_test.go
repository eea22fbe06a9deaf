package auth

import (
	"testing"
	"time"

	"payquick/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService_RequiresSecret(t *testing.T) {
	_, err := NewService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestService_IssueAndParse(t *testing.T) {
	svc, err := NewService("secret", time.Hour)
	require.NoError(t, err)

	token, expires, err := svc.IssueSessionToken("3b241101-e2bb-4255-8caf-4136c566a962")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", claims.SessionID)
	assert.Equal(t, "payquick-api", claims.Issuer)
}

func TestService_ParseToken_Rejects(t *testing.T) {
	svc, err := NewService("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewService("other", time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.IssueSessionToken("sid")
	require.NoError(t, err)

	expiredSvc, err := NewService("secret", time.Hour)
	require.NoError(t, err)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredSvc.IssueSessionToken("sid")
	require.NoError(t, err)

	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
		SessionID:        "sid",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":       "not.a.token",
		"foreign key":   foreign,
		"expired":       expired,
		"no session id": noSession,
		"wrong issuer":  wrongIssuer,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
