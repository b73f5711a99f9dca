package store

import (
	"context"
	"database/sql"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// RevisionSQLStore works on both SQLite and Postgres; queries only use
// positional parameters and portable SQL.
type RevisionSQLStore struct {
	rdb, rwdb *sql.DB
}

func NewRevisionSQLStore(rdb, rwdb *sql.DB) *RevisionSQLStore {
	return &RevisionSQLStore{rdb, rwdb}
}

func (store *RevisionSQLStore) CreateRevision(ctx context.Context, r *Revision) error {
	query := `insert into pipeline_revisions (
		revision_id,
		mode,
		kind,
		job_count,
		format,
		document,
		generated_on
	)
	values ($1, $2, $3, $4, $5, $6, $7)`
	_, err := store.rwdb.ExecContext(
		ctx, query,
		r.RevisionID,
		r.Mode,
		r.Kind,
		r.JobCount,
		r.Format,
		r.Document,
		r.GeneratedOn.UTC(),
	)
	return err
}

func (store *RevisionSQLStore) ReadRevisionByID(
	ctx context.Context,
	id string,
) (*Revision, error) {
	r := new(Revision)
	query := "select * from pipeline_revisions where revision_id = $1"
	if err := sqlscan.Get(ctx, store.rdb, r, query, id); err != nil {
		return nil, err
	}
	return r, nil
}

func (store *RevisionSQLStore) ReadLatestRevision(ctx context.Context) (*Revision, error) {
	r := new(Revision)
	query := `select * from pipeline_revisions
	order by generated_on desc, revision_id desc
	limit 1`
	if err := sqlscan.Get(ctx, store.rdb, r, query); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRevisions returns revisions newest first, without their documents.
func (store *RevisionSQLStore) ListRevisions(ctx context.Context) ([]*Revision, error) {
	revisions := make([]*Revision, 0)
	query := `select
		revision_id,
		mode,
		kind,
		job_count,
		format,
		generated_on
	from pipeline_revisions
	order by generated_on desc, revision_id desc`
	if err := sqlscan.Select(ctx, store.rdb, &revisions, query); err != nil {
		return nil, err
	}
	return revisions, nil
}

// PruneRevisions deletes all but the keep newest revisions and returns the
// number of deleted rows.
func (store *RevisionSQLStore) PruneRevisions(ctx context.Context, keep int64) (int64, error) {
	query := `delete from pipeline_revisions
	where revision_id not in (
		select revision_id from pipeline_revisions
		order by generated_on desc, revision_id desc
		limit $1
	)`
	result, err := store.rwdb.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
