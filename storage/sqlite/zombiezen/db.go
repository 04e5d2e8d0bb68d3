package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// DocsSchema is the script creating the document and link tables.
const DocsSchema = "docs.sql"

//go:embed sql/*.sql
var sqlFiles embed.FS

// connPragmas run on every new connection of the pool.
var connPragmas = []string{
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

// NewPool opens a connection pool on the database file dbPath, creating the
// file when missing.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		Flags:       sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI,
		PoolSize:    min(runtime.NumCPU(), 8),
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}
	return pool, nil
}

func prepareConn(conn *sqlite.Conn) error {
	for _, p := range connPragmas {
		if err := sqlitex.ExecuteTransient(conn, p, nil); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// Open is NewPool followed by CreateSchemas for the document tables.
func Open(ctx context.Context, dbPath string) (*sqlitex.Pool, error) {
	pool, err := NewPool(dbPath)
	if err != nil {
		return nil, err
	}

	if err := CreateSchemas(ctx, pool, DocsSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// CreateSchemas runs the embedded SQL scripts names, in order, on one
// connection of pool. Scripts are idempotent.
func CreateSchemas(ctx context.Context, pool *sqlitex.Pool, names ...string) error {
	conn, err := pool.Take(ctx)
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	for _, name := range names {
		script, err := sqlFiles.ReadFile("sql/" + name)
		if err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}

		if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
	}

	return nil
}
