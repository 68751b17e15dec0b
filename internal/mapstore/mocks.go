package mapstore

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) ReplaceAll(ctx context.Context, templates []tilemap.Template) error {
	args := m.Called(ctx, templates)
	return args.Error(0)
}

func (m *RepositoryMock) List(ctx context.Context) ([]tilemap.Template, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tilemap.Template), args.Error(1)
}

func (m *RepositoryMock) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	args := m.Called(ctx, name)
	t, _ := args.Get(0).(*tilemap.Template)
	return t, args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) StoreAll(ctx context.Context, templates []tilemap.Template) error {
	args := m.Called(ctx, templates)
	return args.Error(0)
}

func (m *CacheMock) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	args := m.Called(ctx, name)
	t, _ := args.Get(0).(*tilemap.Template)
	return t, args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, t *tilemap.Template) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *CacheMock) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *CacheMock) PublishDeployed(ctx context.Context, event DeployEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *CacheMock) SubscribeDeployed(ctx context.Context, fn func(DeployEvent)) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
