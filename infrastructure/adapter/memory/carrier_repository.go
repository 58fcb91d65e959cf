package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/yardops/yardops/application/port/outbound"
	"github.com/yardops/yardops/domain/entity"
)

type CarrierRepository struct {
	mu       sync.RWMutex
	carriers map[int64]entity.Carrier
	nextID   int64
}

func NewCarrierRepository() *CarrierRepository {
	return &CarrierRepository{carriers: make(map[int64]entity.Carrier), nextID: 1}
}

func (r *CarrierRepository) FindByID(_ context.Context, id int64) (*entity.Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carriers[id]
	if !ok {
		return nil, outbound.ErrCarrierNotFound
	}
	carrier := c
	return &carrier, nil
}

func (r *CarrierRepository) Create(_ context.Context, carrier *entity.Carrier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	carrier.ID = r.nextID
	r.nextID++
	r.carriers[carrier.ID] = *carrier
	return nil
}

func (r *CarrierRepository) Update(_ context.Context, carrier *entity.Carrier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carriers[carrier.ID]; !ok {
		return outbound.ErrCarrierNotFound
	}
	r.carriers[carrier.ID] = *carrier
	return nil
}

func (r *CarrierRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carriers[id]; !ok {
		return outbound.ErrCarrierNotFound
	}
	delete(r.carriers, id)
	return nil
}

func (r *CarrierRepository) List(_ context.Context, filter outbound.CarrierListFilter) ([]entity.Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var result []entity.Carrier
	for _, c := range r.carriers {
		if search != "" &&
			!strings.Contains(strings.ToLower(c.CompanyName), search) &&
			!strings.Contains(strings.ToLower(c.CarrierCode), search) &&
			!strings.Contains(strings.ToLower(c.ContactPerson), search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && c.Status != filter.Status {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedOn.Equal(result[j].CreatedOn) {
			return result[i].CreatedOn.After(result[j].CreatedOn)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *CarrierRepository) MaxID(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var max int64
	for id := range r.carriers {
		if id > max {
			max = id
		}
	}
	return max, nil
}

var _ outbound.CarrierRepository = (*CarrierRepository)(nil)
