package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type YardRepository struct {
	mu     sync.RWMutex
	yards  map[int64]entity.Yard
	nextID int64
}

func NewYardRepository() *YardRepository {
	return &YardRepository{yards: make(map[int64]entity.Yard), nextID: 1}
}

func (r *YardRepository) FindByID(_ context.Context, id int64) (*entity.Yard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	y, ok := r.yards[id]
	if !ok {
		return nil, outbound.ErrYardNotFound
	}
	yard := y
	return &yard, nil
}

func (r *YardRepository) Create(_ context.Context, yard *entity.Yard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	yard.ID = r.nextID
	r.nextID++
	r.yards[yard.ID] = *yard
	return nil
}

func (r *YardRepository) Update(_ context.Context, yard *entity.Yard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.yards[yard.ID]; !ok {
		return outbound.ErrYardNotFound
	}
	r.yards[yard.ID] = *yard
	return nil
}

func (r *YardRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.yards[id]; !ok {
		return outbound.ErrYardNotFound
	}
	delete(r.yards, id)
	return nil
}

func (r *YardRepository) List(_ context.Context) ([]entity.Yard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]entity.Yard, 0, len(r.yards))
	for _, y := range r.yards {
		result = append(result, y)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ outbound.YardRepository = (*YardRepository)(nil)
