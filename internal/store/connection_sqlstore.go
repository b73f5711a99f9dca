package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type ConnectionSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewConnectionSQLStore(rdb, rwdb *sql.DB) *ConnectionSQLStore {
	return &ConnectionSQLStore{rdb, rwdb}
}

// CreateConnection stores id, refreshing connected_on when it already exists.
func (store *ConnectionSQLStore) CreateConnection(
	ctx context.Context,
	id string,
	connectedOn time.Time,
) error {
	query := `insert into connections (connection_id, connected_on)
	values ($1, $2)
	on conflict (connection_id) do update set connected_on = excluded.connected_on`
	_, err := store.rwdb.ExecContext(ctx, query, id, connectedOn.UTC())
	return err
}

func (store *ConnectionSQLStore) DeleteConnection(ctx context.Context, id string) error {
	query := "delete from connections where connection_id = $1"
	_, err := store.rwdb.ExecContext(ctx, query, id)
	return err
}

func (store *ConnectionSQLStore) ListConnections(ctx context.Context) ([]*Connection, error) {
	connections := make([]*Connection, 0)
	query := "select * from connections order by connected_on, connection_id"
	if err := sqlscan.Select(ctx, store.rdb, &connections, query); err != nil {
		return nil, err
	}
	return connections, nil
}
