package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/guildmaster/internal/auth"
)

type Authenticator interface {
	Login(c auth.Credentials) (string, error)
}

type AuthHandler struct {
	Auth Authenticator
}

func RegisterAuthRoutes(g *echo.Group, h *AuthHandler) {
	g.POST("/login", h.LoginHandler)
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var creds auth.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	token, err := h.Auth.Login(creds)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
