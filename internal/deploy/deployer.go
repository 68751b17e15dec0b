package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"go.uber.org/zap"
)

var ErrNoTemplates = errors.New("no map templates found")

// Batch is one deploy: every template found in the maps directory.
type Batch struct {
	ID        string
	Templates []tilemap.Template
	CreatedAt time.Time
}

func (b Batch) Names() []string {
	names := make([]string, 0, len(b.Templates))
	for _, t := range b.Templates {
		names = append(names, t.Name)
	}
	return names
}

// Publisher pushes a batch to one destination.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, batch Batch) error
}

type TemplateLoader interface {
	LoadDir(dir string) (tilemap.LoadResult, error)
}

type Result struct {
	BatchID   string
	Templates []tilemap.Template
	Skipped   []string
	Published []string
}

type Deployer struct {
	loader     TemplateLoader
	publishers []Publisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewDeployer(loader TemplateLoader, logger *zap.Logger, publishers ...Publisher) *Deployer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{
		loader:     loader,
		publishers: publishers,
		logger:     logger,
		now:        time.Now,
	}
}

// Plan loads and validates the maps in dir without publishing anything.
func (d *Deployer) Plan(dir string) (Batch, tilemap.LoadResult, error) {
	loaded, err := d.loader.LoadDir(dir)
	if err != nil {
		return Batch{}, loaded, err
	}
	if len(loaded.Templates) == 0 {
		return Batch{}, loaded, fmt.Errorf("%w in %s", ErrNoTemplates, dir)
	}
	for _, t := range loaded.Templates {
		if err := t.Validate(); err != nil {
			return Batch{}, loaded, err
		}
	}

	batch := Batch{
		ID:        uuid.NewString(),
		Templates: loaded.Templates,
		CreatedAt: d.now().UTC(),
	}
	return batch, loaded, nil
}

// Run plans a batch and publishes it.
func (d *Deployer) Run(ctx context.Context, dir string) (Result, error) {
	batch, loaded, err := d.Plan(dir)
	result := Result{
		BatchID:   batch.ID,
		Templates: batch.Templates,
		Skipped:   loaded.Skipped,
	}
	if err != nil {
		return result, err
	}

	d.logger.Info("deploying map templates",
		zap.String("batch", batch.ID),
		zap.Int("count", len(batch.Templates)),
		zap.String("dir", dir))

	result.Published, err = d.Publish(ctx, batch)
	return result, err
}

// Publish hands batch to each publisher in order and returns the names of
// those that succeeded. The first failing publisher stops the run; nothing
// is retried.
func (d *Deployer) Publish(ctx context.Context, batch Batch) ([]string, error) {
	log := d.logger.With(zap.String("batch", batch.ID))

	var published []string
	for _, p := range d.publishers {
		if err := p.Publish(ctx, batch); err != nil {
			log.Error("publish failed", zap.String("publisher", p.Name()), zap.Error(err))
			return published, fmt.Errorf("publish to %s: %w", p.Name(), err)
		}
		log.Info("published", zap.String("publisher", p.Name()))
		published = append(published, p.Name())
	}
	return published, nil
}
