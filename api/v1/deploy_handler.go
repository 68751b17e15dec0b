package v1

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/guildmaster/internal/deploy"
	"go.uber.org/zap"
)

type DeployRunner interface {
	Run(ctx context.Context, dir string) (deploy.Result, error)
}

type DeployHandler struct {
	Deployer DeployRunner
	MapsDir  string
	Logger   *zap.Logger
}

// RegisterDeployRoutes mounts the deploy trigger; mw guards only this route
// so the public map routes sharing the group stay open.
func RegisterDeployRoutes(g *echo.Group, h *DeployHandler, mw ...echo.MiddlewareFunc) {
	g.POST("/deploy", h.DeployMapsHandler, mw...)
}

func (h *DeployHandler) DeployMapsHandler(c echo.Context) error {
	result, err := h.Deployer.Run(c.Request().Context(), h.MapsDir)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("deploy request failed", zap.String("dir", h.MapsDir), zap.Error(err))
		}
		return toHTTPError(err)
	}

	names := make([]string, 0, len(result.Templates))
	for _, t := range result.Templates {
		names = append(names, t.Name)
	}
	return c.JSON(http.StatusAccepted, echo.Map{
		"batchId":   result.BatchID,
		"templates": names,
		"skipped":   result.Skipped,
		"published": result.Published,
	})
}
