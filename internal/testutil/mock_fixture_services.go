package testutil

import (
	"context"

	"github.com/haatos/provider-ci/internal/service"
	"github.com/haatos/provider-ci/internal/store"
	"github.com/stretchr/testify/mock"
)

type MockConnectionService struct {
	mock.Mock
}

func (m *MockConnectionService) Connect(ctx context.Context, id string) service.Response {
	args := m.Called(ctx, id)
	return args.Get(0).(service.Response)
}

func (m *MockConnectionService) Disconnect(ctx context.Context, id string) service.Response {
	args := m.Called(ctx, id)
	return args.Get(0).(service.Response)
}

func (m *MockConnectionService) Broadcast(
	ctx context.Context,
	message []byte,
	send service.Sender,
) service.Response {
	args := m.Called(ctx, message, send)
	return args.Get(0).(service.Response)
}

type MockParameterService struct {
	mock.Mock
}

func (m *MockParameterService) PutParameter(
	ctx context.Context,
	name, value string,
	parameterType store.ParameterType,
	overwrite bool,
) (int64, error) {
	args := m.Called(ctx, name, value, parameterType, overwrite)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParameterService) GetParameter(
	ctx context.Context,
	name string,
	withDecryption bool,
) (*store.Parameter, error) {
	args := m.Called(ctx, name, withDecryption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Parameter), args.Error(1)
}

func (m *MockParameterService) DeleteParameter(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
