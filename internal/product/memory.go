package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products map[string]Product
}

func NewMemoryRepository() Repository {
	return &memoryRepository{products: make(map[string]Product)}
}

func (r *memoryRepository) Create(ctx context.Context, p CreateParams) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pr := newProduct(uuid.NewString(), time.Now().UTC(), p)
	r.products[pr.ID] = pr

	out := pr
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pr, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	out := pr
	return &out, nil
}

func (r *memoryRepository) GetByStore(ctx context.Context, storeID string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []*Product{}
	for _, pr := range r.products {
		if pr.StoreID == storeID {
			out := pr
			products = append(products, &out)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, p UpdateParams) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pr, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	pr.apply(p)
	r.products[id] = pr

	out := pr
	return &out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}
