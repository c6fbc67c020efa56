package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)

	token, err := m.GenerateToken("u-1", "Ana", "strategist")
	assert.NoError(t, err)

	claims, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "strategist", claims.Role)
}

func TestManager_SubjectSeparation(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)

	refresh, err := m.GenerateRefreshToken("u-1", "Ana", "strategist")
	assert.NoError(t, err)

	_, err = m.VerifyToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestManager_Expiry(t *testing.T) {
	m := NewManager("secret", -time.Minute, time.Hour)

	token, err := m.GenerateToken("u-1", "Ana", "strategist")
	assert.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_WrongKey(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)
	other := NewManager("other-secret", time.Minute, time.Hour)

	token, err := m.GenerateToken("u-1", "Ana", "strategist")
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
