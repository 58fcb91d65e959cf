// Package memory provides in-process repository implementations with the
// same filter and ordering semantics as the postgres adapters. They back
// unit tests and the STORE=memory demo mode.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			user := u
			return &user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, outbound.ErrUserNotFound
	}
	user := u
	return &user, nil
}

func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return outbound.ErrUserNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return outbound.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(_ context.Context, filter outbound.UserListFilter) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var result []entity.User
	for _, u := range r.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if filter.Role != "" && filter.Role != "all" && u.Role != filter.Role {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && u.Status != filter.Status {
			continue
		}
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedOn.Before(result[j].CreatedOn)
	})
	return result, nil
}

var _ outbound.UserRepository = (*UserRepository)(nil)
