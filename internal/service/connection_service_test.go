package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/haatos/provider-ci/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockConnectionStore struct {
	mock.Mock
}

func (m *MockConnectionStore) CreateConnection(ctx context.Context, id string, connectedOn time.Time) error {
	args := m.Called(ctx, id, connectedOn)
	return args.Error(0)
}

func (m *MockConnectionStore) DeleteConnection(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConnectionStore) ListConnections(ctx context.Context) ([]*store.Connection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Connection), args.Error(1)
}

func TestConnectionService_Connect(t *testing.T) {
	t.Run("success - connection stored", func(t *testing.T) {
		// arrange
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		s.now = func() time.Time { return now }
		ctx := context.Background()
		mockStore.On("CreateConnection", ctx, "conn-1", now).Return(nil)

		// act
		res := s.Connect(ctx, "conn-1")

		// assert
		assert.Equal(t, Response{StatusCode: http.StatusOK, Body: "Connected."}, res)
		mockStore.AssertExpectations(t)
	})
	t.Run("failure - store error", func(t *testing.T) {
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		ctx := context.Background()
		mockStore.On("CreateConnection", ctx, "conn-1", mock.Anything).Return(errors.New("locked"))

		res := s.Connect(ctx, "conn-1")

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
		assert.Equal(t, "Failed to connect: locked", res.Body)
	})
	t.Run("failure - missing connection id", func(t *testing.T) {
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)

		res := s.Connect(context.Background(), "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		mockStore.AssertNotCalled(t, "CreateConnection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConnectionService_Disconnect(t *testing.T) {
	t.Run("success - connection deleted", func(t *testing.T) {
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		ctx := context.Background()
		mockStore.On("DeleteConnection", ctx, "conn-1").Return(nil)

		res := s.Disconnect(ctx, "conn-1")

		assert.Equal(t, Response{StatusCode: http.StatusOK, Body: "Disconnected."}, res)
	})
	t.Run("failure - store error", func(t *testing.T) {
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		ctx := context.Background()
		mockStore.On("DeleteConnection", ctx, "conn-1").Return(errors.New("locked"))

		res := s.Disconnect(ctx, "conn-1")

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})
}

func TestConnectionService_Broadcast(t *testing.T) {
	t.Run("success - stale connections are removed", func(t *testing.T) {
		// arrange
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		ctx := context.Background()
		mockStore.On("ListConnections", ctx).Return([]*store.Connection{
			{ConnectionID: "live"},
			{ConnectionID: "gone"},
		}, nil)
		mockStore.On("DeleteConnection", ctx, "gone").Return(nil)
		delivered := make(map[string]string)
		send := func(_ context.Context, id string, message []byte) error {
			if id == "gone" {
				return errors.New("gone")
			}
			delivered[id] = string(message)
			return nil
		}

		// act
		res := s.Broadcast(ctx, []byte("hello"), send)

		// assert
		assert.Equal(t, Response{StatusCode: http.StatusOK, Body: "Data sent."}, res)
		assert.Equal(t, map[string]string{"live": "hello"}, delivered)
		mockStore.AssertExpectations(t)
		mockStore.AssertNotCalled(t, "DeleteConnection", ctx, "live")
	})
	t.Run("failure - connections cannot be listed", func(t *testing.T) {
		mockStore := new(MockConnectionStore)
		s := NewConnectionService(mockStore)
		ctx := context.Background()
		mockStore.On("ListConnections", ctx).Return(nil, errors.New("locked"))

		res := s.Broadcast(ctx, []byte("hello"), func(context.Context, string, []byte) error {
			t.Fatal("send must not be called")
			return nil
		})

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	})
}
