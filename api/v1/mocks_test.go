package v1

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thesrcielos/guildmaster/internal/auth"
	"github.com/thesrcielos/guildmaster/internal/deploy"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
)

type TemplateReaderMock struct {
	mock.Mock
}

func (m *TemplateReaderMock) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	args := m.Called(name)
	t, _ := args.Get(0).(*tilemap.Template)
	return t, args.Error(1)
}

func (m *TemplateReaderMock) Names(ctx context.Context) ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *TemplateReaderMock) Bounds(ctx context.Context, name string) (tilemap.Bounds, error) {
	args := m.Called(name)
	return args.Get(0).(tilemap.Bounds), args.Error(1)
}

func (m *TemplateReaderMock) Spawn(ctx context.Context, name string) (string, tilemap.Spawn, error) {
	args := m.Called(name)
	return args.String(0), args.Get(1).(tilemap.Spawn), args.Error(2)
}

type DeployRunnerMock struct {
	mock.Mock
}

func (m *DeployRunnerMock) Run(ctx context.Context, dir string) (deploy.Result, error) {
	args := m.Called(dir)
	return args.Get(0).(deploy.Result), args.Error(1)
}

type AuthenticatorMock struct {
	mock.Mock
}

func (m *AuthenticatorMock) Login(c auth.Credentials) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}
