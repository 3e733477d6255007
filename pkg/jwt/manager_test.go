package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 60, 168)

	token, err := m.GenerateAccessToken(42, "alice")
	assert.NoError(t, err)

	claims, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestManager_RefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", 60, 168)

	token, err := m.GenerateRefreshToken(42)
	assert.NoError(t, err)

	userID, err := m.VerifyRefreshToken(token)
	assert.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuer := NewManager("secret-a", 60, 168)
	verifier := NewManager("secret-b", 60, 168)

	token, err := issuer.GenerateAccessToken(42, "alice")
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("secret", 60, 168)
	_, err := m.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
