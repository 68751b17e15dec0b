package deploy

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
)

type PublisherMock struct {
	mock.Mock
	name string
}

func NewPublisherMock(name string) *PublisherMock {
	return &PublisherMock{name: name}
}

func (m *PublisherMock) Name() string {
	return m.name
}

func (m *PublisherMock) Publish(ctx context.Context, batch Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

type LoaderMock struct {
	mock.Mock
}

func (m *LoaderMock) LoadDir(dir string) (tilemap.LoadResult, error) {
	args := m.Called(dir)
	return args.Get(0).(tilemap.LoadResult), args.Error(1)
}
