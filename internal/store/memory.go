package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	stores map[string]Store
}

func NewMemoryRepository() Repository {
	return &memoryRepository{stores: make(map[string]Store)}
}

func (r *memoryRepository) Create(ctx context.Context, p CreateParams) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Settings = p.Settings.clone()
	s := newStore(uuid.NewString(), time.Now().UTC(), p)
	r.stores[s.ID] = s

	out := s
	out.Settings = s.Settings.clone()
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, ErrStoreNotFound
	}
	out := s
	out.Settings = s.Settings.clone()
	return &out, nil
}

func (r *memoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores := []*Store{}
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			out := s
			out.Settings = s.Settings.clone()
			stores = append(stores, &out)
		}
	}
	sortByCreation(stores)
	return stores, nil
}

func (r *memoryRepository) ListActive(ctx context.Context) ([]*Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores := []*Store{}
	for _, s := range r.stores {
		if s.IsActive {
			out := s
			out.Settings = s.Settings.clone()
			stores = append(stores, &out)
		}
	}
	sortByCreation(stores)
	return stores, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, p UpdateParams) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[id]
	if !ok {
		return nil, ErrStoreNotFound
	}

	s.Settings = s.Settings.clone()
	s.apply(p)
	r.stores[id] = s

	out := s
	out.Settings = s.Settings.clone()
	return &out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[id]; !ok {
		return false, nil
	}
	delete(r.stores, id)
	return true, nil
}

func sortByCreation(stores []*Store) {
	sort.Slice(stores, func(i, j int) bool {
		return stores[i].CreatedAt.Before(stores[j].CreatedAt)
	})
}
