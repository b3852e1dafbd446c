package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	orders map[string]Order
}

func NewMemoryRepository() Repository {
	return &memoryRepository{orders: make(map[string]Order)}
}

func (r *memoryRepository) Create(ctx context.Context, p CreateParams) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderNumber == p.OrderNumber {
			return nil, ErrOrderNumberTaken
		}
	}

	o := newOrder(uuid.NewString(), time.Now().UTC(), p)
	r.orders[o.ID] = o

	out := o
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	out := o
	return &out, nil
}

func (r *memoryRepository) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.OrderNumber == number {
			out := o
			return &out, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *memoryRepository) GetByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []*Order{}
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out := o
			orders = append(orders, &out)
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *memoryRepository) GetByStore(ctx context.Context, storeID string) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []*Order{}
	for _, o := range r.orders {
		if o.StoreID == storeID {
			out := o
			orders = append(orders, &out)
		}
	}
	sortNewestFirst(orders)
	return orders, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o

	out := o
	return &out, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, p UpdateParams) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.apply(p)
	r.orders[id] = o

	out := o
	return &out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

func sortNewestFirst(orders []*Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
