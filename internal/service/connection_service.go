package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/haatos/provider-ci/internal/store"
)

// Response is the status object returned to the caller of a fixture handler.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type ConnectionStore interface {
	CreateConnection(context.Context, string, time.Time) error
	DeleteConnection(context.Context, string) error
	ListConnections(context.Context) ([]*store.Connection, error)
}

// Sender delivers a message to a single connection.
type Sender func(ctx context.Context, connectionID string, message []byte) error

type ConnectionService struct {
	store ConnectionStore
	now   func() time.Time
}

func NewConnectionService(store ConnectionStore) *ConnectionService {
	return &ConnectionService{store: store, now: time.Now}
}

func (s *ConnectionService) Connect(ctx context.Context, connectionID string) Response {
	if connectionID == "" {
		return Response{StatusCode: http.StatusBadRequest, Body: "Missing connection id."}
	}
	if err := s.store.CreateConnection(ctx, connectionID, s.now()); err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: "Failed to connect: " + err.Error()}
	}
	return Response{StatusCode: http.StatusOK, Body: "Connected."}
}

func (s *ConnectionService) Disconnect(ctx context.Context, connectionID string) Response {
	if err := s.store.DeleteConnection(ctx, connectionID); err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: "Failed to disconnect: " + err.Error()}
	}
	return Response{StatusCode: http.StatusOK, Body: "Disconnected."}
}

// Broadcast sends message to every stored connection. Connections the message
// cannot be delivered to are stale and get removed.
func (s *ConnectionService) Broadcast(
	ctx context.Context,
	message []byte,
	send Sender,
) Response {
	connections, err := s.store.ListConnections(ctx)
	if err != nil {
		return Response{StatusCode: http.StatusInternalServerError, Body: err.Error()}
	}

	for _, c := range connections {
		if err := send(ctx, c.ConnectionID, message); err != nil {
			slog.Info("removing stale connection", "connection_id", c.ConnectionID, "error", err)
			if err := s.store.DeleteConnection(ctx, c.ConnectionID); err != nil {
				return Response{StatusCode: http.StatusInternalServerError, Body: err.Error()}
			}
		}
	}
	return Response{StatusCode: http.StatusOK, Body: "Data sent."}
}
