package product

import (
	"context"

	"marketplace-be/internal/money"
	"marketplace-be/internal/store"
)

// StoreLister is the slice of the store service needed to resolve an
// owner's products.
type StoreLister interface {
	GetByOwner(ctx context.Context, ownerID string) ([]*store.Store, error)
}

type Service interface {
	Create(ctx context.Context, p CreateParams) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByStore(ctx context.Context, storeID string) ([]*Product, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Product, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo   Repository
	stores StoreLister
}

func NewService(repo Repository, stores StoreLister) Service {
	return &service{repo: repo, stores: stores}
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Product, error) {
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if p.StoreID == "" {
		return nil, ErrStoreRequired
	}
	if p.Stock < 0 {
		return nil, ErrInvalidStock
	}
	if p.Price != "" {
		if _, err := money.Parse(p.Price); err != nil {
			return nil, ErrInvalidPrice
		}
	}
	return s.repo.Create(ctx, p)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByStore(ctx context.Context, storeID string) ([]*Product, error) {
	return s.repo.GetByStore(ctx, storeID)
}

// GetByOwner walks the owner's stores and collects each store's products.
func (s *service) GetByOwner(ctx context.Context, ownerID string) ([]*Product, error) {
	stores, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products := []*Product{}
	for _, st := range stores {
		batch, err := s.repo.GetByStore(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		products = append(products, batch...)
	}
	return products, nil
}

func (s *service) Update(ctx context.Context, id string, p UpdateParams) (*Product, error) {
	if p.Stock != nil && *p.Stock < 0 {
		return nil, ErrInvalidStock
	}
	if p.Price != nil {
		if _, err := money.Parse(*p.Price); err != nil {
			return nil, ErrInvalidPrice
		}
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
