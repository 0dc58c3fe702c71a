// Package services contains server-side business logic. This file
// implements UserService: registration, login, and self-service CRUD on
// user profiles.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/server/models"
	"github.com/dbelyaev/coachbase/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// emailRegexp accepts local@domain.tld shapes only. Deliberately simple;
// the address is confirmed by use, not by parsing.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService provides the credential-store operations:
//   - Register: validate input, derive username, hash the password, create.
//   - Login: verify credentials against the stored hash.
//   - Get/GetAll/Update/Delete: profile CRUD with self-only authorization.
type UserService struct {
	repo users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user. The username is the local part of the
// email; the raw password is bcrypt-hashed before it reaches storage.
// A duplicate email or username yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {

	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", common.ErrValidation)
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		Username:     strings.SplitN(email, "@", 2)[0],
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			// the unique keys are email and the derived username; either
			// one can be the colliding key
			return nil, fmt.Errorf("%w: user with this email or username already exists", common.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the email/password pair. Unknown email and wrong
// password are indistinguishable to the caller: both yield
// common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// GetAll returns every user record. Sanitization happens at the
// transport edge.
func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// GetByID returns the record with the given id or common.ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to the target user. Self-service only:
// callers may update no one but themselves. Present fields are merged
// one by one; a present password is re-hashed. An update with no fields
// never reaches storage and reports the record as not found.
func (s *UserService) Update(ctx context.Context, callerID, targetID int64, upd models.UserUpdate) (*models.User, error) {

	if callerID != targetID {
		return nil, fmt.Errorf("%w: you can only update your own profile", common.ErrForbidden)
	}
	if upd.Empty() {
		return nil, common.ErrNotFound
	}
	if upd.Email != nil && !emailRegexp.MatchString(*upd.Email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}

	user, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		hash, err := s.hashPassword(*upd.Password)
		if err != nil {
			return nil, common.ErrInternal
		}
		user.PasswordHash = hash
	}

	return s.repo.Update(ctx, user)
}

// Delete removes the target user. Same ownership rule as Update.
func (s *UserService) Delete(ctx context.Context, callerID, targetID int64) error {

	if callerID != targetID {
		return fmt.Errorf("%w: you can only delete your own profile", common.ErrForbidden)
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
