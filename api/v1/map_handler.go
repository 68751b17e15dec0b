package v1

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
)

type TemplateReader interface {
	Get(ctx context.Context, name string) (*tilemap.Template, error)
	Names(ctx context.Context) ([]string, error)
	Bounds(ctx context.Context, name string) (tilemap.Bounds, error)
	Spawn(ctx context.Context, name string) (string, tilemap.Spawn, error)
}

type MapHandler struct {
	Templates TemplateReader
}

func RegisterMapRoutes(g *echo.Group, h *MapHandler) {
	g.GET("", h.ListMapsHandler)
	g.GET("/:name", h.GetMapHandler)
	g.GET("/:name/bounds", h.GetBoundsHandler)
	g.GET("/:name/spawn", h.GetSpawnHandler)
	g.GET("/:name/collision", h.GetCollisionHandler)
	g.GET("/:name/tiles/:x/:y", h.GetTileHandler)
}

func (h *MapHandler) ListMapsHandler(c echo.Context) error {
	names, err := h.Templates.Names(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"maps": names,
	})
}

func (h *MapHandler) GetMapHandler(c echo.Context) error {
	t, err := h.Templates.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *MapHandler) GetBoundsHandler(c echo.Context) error {
	b, err := h.Templates.Bounds(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *MapHandler) GetSpawnHandler(c echo.Context) error {
	name, spawn, err := h.Templates.Spawn(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"map":   name,
		"spawn": spawn,
	})
}

// GetCollisionHandler returns the solid/walkable grid of a map. The optional
// solid query lists the tile ids that block movement, e.g. ?solid=2,3.
func (h *MapHandler) GetCollisionHandler(c echo.Context) error {
	blocked, err := parseSolidTiles(c.QueryParam("solid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	t, err := h.Templates.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"map":    t.Name,
		"width":  t.Width,
		"height": t.Height,
		"solid":  t.CollisionMatrix(blocked),
	})
}

func (h *MapHandler) GetTileHandler(c echo.Context) error {
	x, errX := strconv.Atoi(c.Param("x"))
	y, errY := strconv.Atoi(c.Param("y"))
	if errX != nil || errY != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}

	t, err := h.Templates.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		return toHTTPError(err)
	}
	tile, ok := t.At(x, y)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tile out of bounds")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"map":  t.Name,
		"x":    x,
		"y":    y,
		"tile": tile,
	})
}

// parseSolidTiles turns "2,3" into a predicate. An empty list returns nil,
// leaving the template's default.
func parseSolidTiles(raw string) (func(uint32) bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	solid := make(map[uint32]struct{})
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		solid[uint32(v)] = struct{}{}
	}
	return func(tile uint32) bool {
		_, ok := solid[tile]
		return ok
	}, nil
}
