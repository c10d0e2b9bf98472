package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, CompareHashAndPassword(hash, "supersecret"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/media/avatars/a.png",
		PublicURL("", "media", "avatars/a.png"))
	assert.Equal(t,
		"https://cdn.example.com/avatars/a.png",
		PublicURL("https://cdn.example.com", "media", "avatars/a.png"))
	assert.Equal(t,
		"https://cdn.example.com/avatars/a.png",
		PublicURL("https://cdn.example.com/", "media", "avatars/a.png"))
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, exp, err := m.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sess-1", claims.SessionID)

	// An access token must not validate against the refresh secret.
	_, err = m.ParseRefreshToken(token)
	assert.Error(t, err)
}

func TestJWTExpiredToken(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, _, err := m.GenerateAccessToken("user-1", "sess-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}
