package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type RoleRepository struct {
	mu    sync.RWMutex
	roles map[string]entity.Role
	users *UserRepository
}

// NewRoleRepository shares the user store so CountUsers can see role
// assignments. users may be nil in tests that never count.
func NewRoleRepository(users *UserRepository) *RoleRepository {
	return &RoleRepository{roles: make(map[string]entity.Role), users: users}
}

func (r *RoleRepository) FindByID(_ context.Context, id string) (*entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[id]
	if !ok {
		return nil, outbound.ErrRoleNotFound
	}
	result := role
	return &result, nil
}

func (r *RoleRepository) FindByName(_ context.Context, name string) (*entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			result := role
			return &result, nil
		}
	}
	return nil, outbound.ErrRoleNotFound
}

func (r *RoleRepository) Create(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.ID] = *role
	return nil
}

func (r *RoleRepository) Update(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[role.ID]; !ok {
		return outbound.ErrRoleNotFound
	}
	r.roles[role.ID] = *role
	return nil
}

func (r *RoleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return outbound.ErrRoleNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *RoleRepository) List(_ context.Context) ([]entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		result = append(result, role)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *RoleRepository) CountUsers(ctx context.Context, name string) (int, error) {
	if r.users == nil {
		return 0, nil
	}
	users, err := r.users.List(ctx, outbound.UserListFilter{Role: name})
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

var _ outbound.RoleRepository = (*RoleRepository)(nil)
