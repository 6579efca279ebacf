// Package dbtest opens throwaway sqlite databases carrying the banking schema.
package dbtest

import (
	"database/sql"
	_ "embed"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

//go:embed schema.sql
var schema string

// Open returns an in-memory database private to the test. The pool is
// limited to one connection so every unit of work sees the same memory.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+uuid.NewString()+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(schema)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })
	return db
}
