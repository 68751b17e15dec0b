package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/deploy"
)

const INVALID_REQUEST = "invalid request"

// toHTTPError maps service errors onto echo errors.
func toHTTPError(err error) error {
	var cmdErr *deploy.CommandError
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, deploy.ErrNoTemplates):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no map templates found")
	case errors.As(err, &cmdErr):
		return echo.NewHTTPError(http.StatusBadGateway, echo.Map{
			"error":    "spacetime call failed",
			"exitCode": cmdErr.ExitCode,
			"stderr":   cmdErr.Stderr,
		})
	case errors.As(err, &appErr):
		return echo.NewHTTPError(apperrors.StatusCode(err), appErr.Message)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
