package repository

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a new MySQL database connection pool with the given DSN.
// The DSN needs parseTime=true so DATETIME columns scan into time.Time,
// multiStatements=true for the migration runner, and clientFoundRows=true
// so RowsAffected reports matched rows rather than changed rows. Without
// the last flag an UPDATE that rewrites a row with identical values
// reports 0 and would be mistaken for a missing row.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
