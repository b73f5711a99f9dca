package testutil

import (
	"context"

	"github.com/haatos/provider-ci/internal/registry"
	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) ListServices() []registry.ServiceSpec {
	args := m.Called()
	return args.Get(0).([]registry.ServiceSpec)
}

func (m *MockPipelineService) GetService(key string) (registry.ServiceSpec, error) {
	args := m.Called(key)
	return args.Get(0).(registry.ServiceSpec), args.Error(1)
}

func (m *MockPipelineService) RenderPipeline(
	format service.DocumentFormat,
	only ...string,
) ([]byte, error) {
	args := m.Called(format, only)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPipelineService) CreateRevision(
	ctx context.Context,
	format service.DocumentFormat,
) (*store.Revision, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Revision), args.Error(1)
}

func (m *MockPipelineService) GetRevision(ctx context.Context, id string) (*store.Revision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Revision), args.Error(1)
}

func (m *MockPipelineService) GetLatestRevision(ctx context.Context) (*store.Revision, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Revision), args.Error(1)
}

func (m *MockPipelineService) ListRevisions(ctx context.Context) ([]*store.Revision, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Revision), args.Error(1)
}
