package store

import "time"

// Connection is a client connected to the fixture WebSocket endpoint.
type Connection struct {
	ConnectionID string    `json:"connection_id"`
	ConnectedOn  time.Time `json:"connected_on"`
}
