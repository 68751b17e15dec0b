package auth

import (
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// mockGenerateJWT overrides GenerateJWT when set.
var mockGenerateJWT func(secret, subject string) (string, error)

func TestMain(m *testing.M) {
	orig := GenerateJWT
	GenerateJWT = func(secret, subject string) (string, error) {
		if mockGenerateJWT != nil {
			return mockGenerateJWT(secret, subject)
		}
		return orig(secret, subject)
	}
	code := m.Run()
	GenerateJWT = orig
	os.Exit(code)
}

func newAdmin(t *testing.T) *AdminService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAdminService("admin", string(hash), "secret")
}

func TestAdminService_Login(t *testing.T) {
	mockGenerateJWT = func(secret, subject string) (string, error) { return "token123", nil }
	defer func() { mockGenerateJWT = nil }()

	token, err := newAdmin(t).Login(Credentials{Username: "admin", Password: "hunter2"})
	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
}

func TestAdminService_Login_WrongPassword(t *testing.T) {
	_, err := newAdmin(t).Login(Credentials{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusCode(err))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_Login_WrongUser(t *testing.T) {
	_, err := newAdmin(t).Login(Credentials{Username: "root", Password: "hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_Login_NoHashConfigured(t *testing.T) {
	_, err := NewAdminService("admin", "", "secret").Login(Credentials{Username: "admin"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_Login_TokenError(t *testing.T) {
	mockGenerateJWT = func(secret, subject string) (string, error) { return "", errors.New("fail") }
	defer func() { mockGenerateJWT = nil }()

	_, err := newAdmin(t).Login(Credentials{Username: "admin", Password: "hunter2"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("secret", "admin")
	require.NoError(t, err)

	subject, err := ValidateJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = ValidateJWT("other", token)
	assert.Error(t, err)

	_, err = ValidateJWT("secret", "")
	assert.Error(t, err)
}

func TestGenerateJWT_NoSecret(t *testing.T) {
	_, err := GenerateJWT("", "admin")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
}
