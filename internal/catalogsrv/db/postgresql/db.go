// Package postgresql implements the catalog store over PostgreSQL with
// hand-written SQL. Queries run on the per-request connection supplied by
// dbmanager.
package postgresql

import (
	"database/sql"

	"github.com/mediakite/catalogd/internal/catalogsrv/db/dbmanager"
)

// NewCatalogDb binds the content, user and connection managers to a
// checked-out database connection.
func NewCatalogDb(c dbmanager.Conn) (*contentManager, *userManager, *connectionManager) {
	return &contentManager{c: c}, &userManager{c: c}, &connectionManager{c: c}
}

type contentManager struct {
	c dbmanager.Conn
}

func (cm *contentManager) conn() *sql.Conn {
	return cm.c.Conn()
}

type userManager struct {
	c dbmanager.Conn
}

func (um *userManager) conn() *sql.Conn {
	return um.c.Conn()
}

type connectionManager struct {
	c dbmanager.Conn
}
