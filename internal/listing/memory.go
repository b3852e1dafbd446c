package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	listings map[string]Listing
}

func NewMemoryRepository() Repository {
	return &memoryRepository{listings: make(map[string]Listing)}
}

func (r *memoryRepository) Create(ctx context.Context, p CreateParams) (*Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l := newListing(uuid.NewString(), time.Now().UTC(), p)
	r.listings[l.ID] = l

	out := l
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	out := l
	return &out, nil
}

func (r *memoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := []*Listing{}
	for _, l := range r.listings {
		if l.OwnerID == ownerID {
			out := l
			listings = append(listings, &out)
		}
	}
	sortNewestFirst(listings)
	return listings, nil
}

func (r *memoryRepository) ListActiveByKind(ctx context.Context, kind Kind) ([]*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := []*Listing{}
	for _, l := range r.listings {
		if l.Kind == kind && l.IsActive {
			out := l
			listings = append(listings, &out)
		}
	}
	sortNewestFirst(listings)
	return listings, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, p UpdateParams) (*Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	l.apply(p)
	r.listings[id] = l

	out := l
	return &out, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return false, nil
	}
	delete(r.listings, id)
	return true, nil
}

func sortNewestFirst(listings []*Listing) {
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
}
