package auth

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aishort/showcase-server/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v="))

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Limits(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = HashPassword(strings.Repeat("x", MaxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$v=1$x$y$z", "$argon2id$v=19$m=1,t=1,p=1$!!$!!"} {
		assert.False(t, VerifyPassword(h, "pw"), h)
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	info, err := os.Stat(filepath.Join(dir, KeyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again, "existing key is reused")
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFileName), []byte("short"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func TestParseKeyHex(t *testing.T) {
	raw := make([]byte, keyLength)
	for i := range raw {
		raw[i] = byte(i)
	}

	key, err := ParseKeyHex(" " + hex.EncodeToString(raw) + "\n")
	require.NoError(t, err)
	assert.Equal(t, raw, key)

	_, err = ParseKeyHex(strings.Repeat("zz", keyLength))
	assert.Error(t, err)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(make([]byte, keyLength), time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	user := &domain.User{ID: "usr-abc", Email: "a@example.com"}

	token, expires, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-abc", claims.UserID)
	assert.Equal(t, "usr-abc", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := newTestTokenService(t)
	user := &domain.User{ID: "usr-abc"}

	other, err := NewTokenService(append(make([]byte, keyLength-1), 1), time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.GenerateAccessToken(user)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	svc.now = time.Now

	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"wrong key": foreign,
		"expired":   expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyAccessToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService(make([]byte, 16), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(make([]byte, keyLength), 0)
	assert.Error(t, err)
}
