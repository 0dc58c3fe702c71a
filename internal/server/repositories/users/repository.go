// Package users persists user records. Uniqueness of username and email
// is enforced by the store; callers receive common.ErrAlreadyExists on
// violation.
package users

import (
	"context"

	"github.com/dbelyaev/coachbase/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// Update rewrites the mutable columns of the record with the given id
	// from the fully resolved user value. The field-by-field merge happens
	// in the service layer, which owns password re-hashing.
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
