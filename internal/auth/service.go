package auth

import (
	"errors"
	"net/http"

	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminService authenticates the single deploy operator configured through
// ADMIN_USERNAME and ADMIN_PASSWORD_HASH.
type AdminService struct {
	username     string
	passwordHash []byte
	secret       string
}

func NewAdminService(username, passwordHash, secret string) *AdminService {
	return &AdminService{
		username:     username,
		passwordHash: []byte(passwordHash),
		secret:       secret,
	}
}

func (s *AdminService) Login(c Credentials) (string, error) {
	if len(s.passwordHash) == 0 || c.Username != s.username {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(c.Password)); err != nil {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "invalid credentials", ErrInvalidCredentials)
	}

	token, err := GenerateJWT(s.secret, s.username)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusInternalServerError, "error creating jwt token", err)
	}
	return token, nil
}

// HashPassword produces a value suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
