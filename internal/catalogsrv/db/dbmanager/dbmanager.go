// Package dbmanager manages the PostgreSQL connection pool. Each request
// checks a dedicated connection out of the pool and returns it on Close.
package dbmanager

import (
	"context"
	"database/sql"
)

type Pool interface {
	// Conn returns a new connection to the database.
	Conn(ctx context.Context) (Conn, error)
	// Stats returns the number of connection requests and returns.
	Stats() (requests, returns uint64)
}

type Conn interface {
	// Conn returns the underlying database connection.
	Conn() *sql.Conn
	// Close returns the connection back to the pool.
	Close(ctx context.Context)
}
