package main

import (
	"context"
	"fmt"

	"github.com/revelaction/annotext/storage/sqlite/zombiezen"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Pool holds the SQLite pool of the run. Commands open at most one
// database; it is closed when the app exits.
type Pool struct {
	path string
	p    *sqlitex.Pool
}

// Open returns the pool on the database at path, opening it and creating
// the document tables on first use.
func (p *Pool) Open(path string) (*sqlitex.Pool, error) {
	if p.p != nil {
		if p.path != path {
			return nil, fmt.Errorf("database %s already open, cannot open %s", p.path, path)
		}
		return p.p, nil
	}

	pool, err := zombiezen.Open(context.TODO(), path)
	if err != nil {
		return nil, err
	}

	p.path, p.p = path, pool
	return pool, nil
}

func (p *Pool) Close() error {
	if p.p == nil {
		return nil
	}

	err := p.p.Close()
	p.p = nil
	return err
}
