// Package db wires the SQL connection, repositories, and schema
// migrations behind a single manager.
package db

import (
	"context"
	"database/sql"

	"github.com/dbelyaev/coachbase/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
