package deploy

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/guildmaster/internal/mapstore"
)

func TestRepositoryPublisher_Publish(t *testing.T) {
	repo := &mapstore.RepositoryMock{}
	batch := Batch{ID: "b1", Templates: twoTemplates().Templates}
	repo.On("ReplaceAll", ctx, batch.Templates).Return(nil)

	err := (&RepositoryPublisher{Repo: repo}).Publish(ctx, batch)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCachePublisher_Publish(t *testing.T) {
	cache := &mapstore.CacheMock{}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	batch := Batch{ID: "b1", Templates: twoTemplates().Templates, CreatedAt: created}

	cache.On("StoreAll", ctx, batch.Templates).Return(nil)
	cache.On("PublishDeployed", ctx, mapstore.DeployEvent{
		BatchID:    "b1",
		Templates:  []string{"tavern_inside", "tavern_outside"},
		DeployedAt: created,
	}).Return(nil)

	err := (&CachePublisher{Cache: cache}).Publish(ctx, batch)
	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestCachePublisher_StoreFailureSkipsNotification(t *testing.T) {
	cache := &mapstore.CacheMock{}
	batch := Batch{ID: "b1", Templates: twoTemplates().Templates}
	cache.On("StoreAll", ctx, batch.Templates).Return(errors.New("redis down"))

	err := (&CachePublisher{Cache: cache}).Publish(ctx, batch)
	assert.Error(t, err)
	cache.AssertNotCalled(t, "PublishDeployed", mock.Anything, mock.Anything)
}
