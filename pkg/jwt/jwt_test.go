package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SessionTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", "unispattes")

	token, err := m.GenerateSessionToken("sid-1", 42, time.Hour)
	require.NoError(t, err)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.ID)
	assert.Equal(t, int64(42), claims.AccountID)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	token, err := NewManager("other", "unispattes").GenerateSessionToken("sid", 1, time.Hour)
	require.NoError(t, err)

	_, err = NewManager("secret", "unispattes").ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", "unispattes")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := m.GenerateSessionToken("sid", 1, time.Hour)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsWrongType(t *testing.T) {
	m := NewManager("secret", "unispattes")
	claims := Claims{
		AccountID: 1,
		Type:      "access",
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "sid",
			Issuer:    "unispattes",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
