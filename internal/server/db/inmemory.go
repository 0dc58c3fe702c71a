package db

import (
	"context"
	"database/sql"

	"github.com/dbelyaev/coachbase/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves the repository interfaces from process
// memory. Used by tests and by the "memory" DSN for running the server
// without a database.
type InMemoryRepositoryManager struct {
	users users.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}
