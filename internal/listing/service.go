package listing

import (
	"context"
	"strings"
	"time"
)

type Service interface {
	Create(ctx context.Context, p CreateParams) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
	ListPublic(ctx context.Context, kind Kind, f Filter) ([]*Listing, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, p CreateParams) (*Listing, error) {
	if !p.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if p.Title == "" {
		return nil, ErrTitleRequired
	}
	if p.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.repo.Create(ctx, p)
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID string) ([]*Listing, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// ListPublic returns the browsable board for a kind: active listings,
// expired ones dropped, optional city and free-text filters ANDed on top.
func (s *service) ListPublic(ctx context.Context, kind Kind, f Filter) ([]*Listing, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}

	base, err := s.repo.ListActiveByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := []*Listing{}
	for _, l := range base {
		if l.Expired(now) {
			continue
		}
		if !matches(l, f) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func matches(l *Listing, f Filter) bool {
	if f.City != "" {
		if l.City == nil || !strings.EqualFold(*l.City, f.City) {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(l.Title)
		if l.Description != nil {
			haystack += " " + strings.ToLower(*l.Description)
		}
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func (s *service) Update(ctx context.Context, id string, p UpdateParams) (*Listing, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
