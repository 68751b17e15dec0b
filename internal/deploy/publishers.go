package deploy

import (
	"context"

	"github.com/thesrcielos/guildmaster/internal/mapstore"
)

// RepositoryPublisher mirrors the batch into Postgres.
type RepositoryPublisher struct {
	Repo mapstore.Repository
}

func (p *RepositoryPublisher) Name() string {
	return "postgres"
}

func (p *RepositoryPublisher) Publish(ctx context.Context, batch Batch) error {
	return p.Repo.ReplaceAll(ctx, batch.Templates)
}

// CachePublisher refreshes the Redis template cache and announces the
// deploy to subscribed map servers.
type CachePublisher struct {
	Cache mapstore.Cache
}

func (p *CachePublisher) Name() string {
	return "redis"
}

func (p *CachePublisher) Publish(ctx context.Context, batch Batch) error {
	if err := p.Cache.StoreAll(ctx, batch.Templates); err != nil {
		return err
	}
	return p.Cache.PublishDeployed(ctx, mapstore.DeployEvent{
		BatchID:    batch.ID,
		Templates:  batch.Names(),
		DeployedAt: batch.CreatedAt,
	})
}
