package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

type ParameterSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewParameterSQLStore(rdb, rwdb *sql.DB) *ParameterSQLStore {
	return &ParameterSQLStore{rdb, rwdb}
}

func (store *ParameterSQLStore) ReadParameterByName(
	ctx context.Context,
	name string,
) (*Parameter, error) {
	p := new(Parameter)
	query := "select * from parameters where name = $1"
	if err := sqlscan.Get(ctx, store.rdb, p, query, name); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateParameter inserts p. It returns ErrParameterExists when a parameter of
// the same name is already stored.
func (store *ParameterSQLStore) CreateParameter(ctx context.Context, p *Parameter) error {
	query := `insert into parameters (name, value, type, version, updated_on)
	values ($1, $2, $3, $4, $5)
	on conflict (name) do nothing`
	res, err := store.rwdb.ExecContext(
		ctx, query,
		p.Name,
		p.Value,
		p.Type,
		p.Version,
		p.UpdatedOn.UTC(),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrParameterExists
	}
	return nil
}

// PutParameter inserts p or replaces the stored parameter of the same name,
// incrementing its version. It returns the stored version.
func (store *ParameterSQLStore) PutParameter(ctx context.Context, p *Parameter) (int64, error) {
	query := `insert into parameters (name, value, type, version, updated_on)
	values ($1, $2, $3, $4, $5)
	on conflict (name) do update set
		value = excluded.value,
		type = excluded.type,
		version = parameters.version + 1,
		updated_on = excluded.updated_on
	returning version`
	var version int64
	err := store.rwdb.QueryRowContext(
		ctx, query,
		p.Name,
		p.Value,
		p.Type,
		p.Version,
		p.UpdatedOn.UTC(),
	).Scan(&version)
	return version, err
}

func (store *ParameterSQLStore) DeleteParameter(ctx context.Context, name string) error {
	query := "delete from parameters where name = $1"
	_, err := store.rwdb.ExecContext(ctx, query, name)
	return err
}
