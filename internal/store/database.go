package store

import (
	"database/sql"
	"log"
	"runtime"

	"github.com/haatos/provider-ci/internal/settings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect is the goose dialect of the configured database.
func Dialect(s *settings.AppSettings) string {
	if s.IsPostgres() {
		return "postgres"
	}
	return "sqlite"
}

func InitDatabase(s *settings.AppSettings, readonly bool) *sql.DB {
	if s.IsPostgres() {
		db, err := sql.Open("pgx", s.DatabaseURL)
		if err != nil {
			log.Fatal("fatal error opening postgres database:", err)
		}
		return db
	}

	db, err := sql.Open("sqlite", s.SQLiteDbString(readonly))
	if err != nil {
		log.Fatal("fatal error opening sqlite database:", err)
	}

	if readonly {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
	} else {
		if _, err := db.Exec("PRAGMA temp_store=memory"); err != nil {
			log.Fatal(err)
		}
		db.SetMaxOpenConns(1)
	}

	return db
}
