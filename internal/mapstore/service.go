package mapstore

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"go.uber.org/zap"
)

// StartingMap is where players land when their map has no template.
const StartingMap = "tavern_outside"

// TemplateService reads templates cache-first, falling back to the
// repository and refilling the cache on a miss. cache may be nil.
type TemplateService struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
}

func NewTemplateService(repo Repository, cache Cache, logger *zap.Logger) *TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{repo: repo, cache: cache, logger: logger}
}

func (s *TemplateService) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "template name is required", nil)
	}

	if s.cache != nil {
		t, err := s.cache.Get(ctx, name)
		if err != nil {
			s.logger.Warn("template cache read failed", zap.String("template", name), zap.Error(err))
		} else if t != nil {
			return t, nil
		}
	}

	t, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, t); err != nil {
			s.logger.Warn("template cache fill failed", zap.String("template", name), zap.Error(err))
		}
	}
	return t, nil
}

func (s *TemplateService) Names(ctx context.Context) ([]string, error) {
	templates, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Name)
	}
	return names, nil
}

func (s *TemplateService) Bounds(ctx context.Context, name string) (tilemap.Bounds, error) {
	t, err := s.Get(ctx, name)
	if err != nil {
		return tilemap.Bounds{}, err
	}
	return t.Bounds(), nil
}

// Spawn returns the spawn point of name, or of StartingMap when name has no
// template.
func (s *TemplateService) Spawn(ctx context.Context, name string) (string, tilemap.Spawn, error) {
	t, err := s.Get(ctx, name)
	if err == nil {
		return t.Name, t.Spawn(), nil
	}
	if apperrors.StatusCode(err) != http.StatusNotFound {
		return "", tilemap.Spawn{}, err
	}

	s.logger.Warn("spawn not found, redirecting to starting map",
		zap.String("template", name),
		zap.String("startingMap", StartingMap))

	start, errStart := s.Get(ctx, StartingMap)
	if errStart != nil {
		return "", tilemap.Spawn{}, errors.Join(err, errStart)
	}
	return start.Name, start.Spawn(), nil
}
