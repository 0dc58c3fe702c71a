package users

import (
	"context"
	"sync"
	"time"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/server/models"
)

// InMemoryRepository implements Repository over a map. It backs service
// and handler tests; the uniqueness rules match the postgres schema.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[int64]models.User), nextID: 1}
}

func (r *InMemoryRepository) taken(username, email string, excludeID int64) bool {
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		if u.Username == username || u.Email == email {
			return true
		}
	}
	return false
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(user.Username, user.Email, 0) {
		return nil, common.ErrAlreadyExists
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user

	return user, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			all = append(all, u)
		}
	}
	return all, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return nil, common.ErrNotFound
	}
	if r.taken(user.Username, user.Email, user.ID) {
		return nil, common.ErrAlreadyExists
	}

	user.CreatedAt = stored.CreatedAt
	r.users[user.ID] = *user

	return user, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
