package store

import (
	"context"
	"strings"

	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

// OwnerDirectory resolves a store owner's city for the city filter.
type OwnerDirectory interface {
	CityOf(ctx context.Context, ownerID string) (string, error)
}

// OwnerDirectoryFunc adapts a plain function to OwnerDirectory.
type OwnerDirectoryFunc func(ctx context.Context, ownerID string) (string, error)

func (f OwnerDirectoryFunc) CityOf(ctx context.Context, ownerID string) (string, error) {
	return f(ctx, ownerID)
}

type Service interface {
	Create(ctx context.Context, p CreateParams) (*Store, error)
	CreateDefaultStore(ctx context.Context, ownerID, name string) error
	GetByID(ctx context.Context, id string) (*Store, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Store, error)
	ListFiltered(ctx context.Context, f Filter) ([]*Store, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Store, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo   Repository
	owners OwnerDirectory
}

func NewService(repo Repository, owners OwnerDirectory) Service {
	return &service{repo: repo, owners: owners}
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Store, error) {
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if p.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.repo.Create(ctx, p)
}

// CreateDefaultStore provisions the storefront every new merchant starts
// with: named after the merchant, default working hours and days.
func (s *service) CreateDefaultStore(ctx context.Context, ownerID, name string) error {
	if name == "" {
		name = "My Store"
	}
	_, err := s.repo.Create(ctx, CreateParams{
		OwnerID:  ownerID,
		Name:     name,
		Settings: DefaultSettings(),
	})
	if err == nil {
		logger.FromCtx(ctx).Info("default store created",
			zap.String("owner_id", ownerID),
		)
	}
	return err
}

func (s *service) GetByID(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID string) ([]*Store, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// ListFiltered fetches the active-only base set, then applies the three
// optional filters (category, free-text search, owner city) with AND
// semantics. Search is a case-insensitive substring match over
// name+description; category lives in the settings blob.
func (s *service) ListFiltered(ctx context.Context, f Filter) ([]*Store, error) {
	base, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := []*Store{}
	for _, st := range base {
		ok, err := s.matches(ctx, st, f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *service) matches(ctx context.Context, st *Store, f Filter) (bool, error) {
	if f.Category != "" {
		cat, _ := st.Settings["category"].(string)
		if !strings.EqualFold(cat, f.Category) {
			return false, nil
		}
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(st.Name)
		if st.Description != nil {
			haystack += " " + strings.ToLower(*st.Description)
		}
		if !strings.Contains(haystack, needle) {
			return false, nil
		}
	}

	if f.City != "" {
		if s.owners == nil {
			return false, nil
		}
		city, err := s.owners.CityOf(ctx, st.OwnerID)
		if err != nil {
			return false, err
		}
		if !strings.EqualFold(city, f.City) {
			return false, nil
		}
	}

	return true, nil
}

func (s *service) Update(ctx context.Context, id string, p UpdateParams) (*Store, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
