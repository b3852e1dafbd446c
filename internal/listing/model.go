package listing

import (
	"time"
)

// Kind discriminates the three catalog boards sharing one shape:
// restaurants, job postings, and classified ads.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindJob        Kind = "job"
	KindAd         Kind = "ad"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRestaurant, KindJob, KindAd:
		return true
	}
	return false
}

type Listing struct {
	ID          string         `json:"id"`
	Kind        Kind           `json:"kind"`
	OwnerID     string         `json:"ownerId"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	City        *string        `json:"city,omitempty"`
	Category    *string        `json:"category,omitempty"`
	IsActive    bool           `json:"isActive"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type CreateParams struct {
	Kind        Kind
	OwnerID     string
	Title       string
	Description *string
	City        *string
	Category    *string
	ExpiresAt   *time.Time
	Extra       map[string]any
}

type UpdateParams struct {
	Title       *string
	Description *string
	City        *string
	Category    *string
	IsActive    *bool
	ExpiresAt   *time.Time
	Extra       map[string]any
}

func (p UpdateParams) Empty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.City == nil &&
		p.Category == nil &&
		p.IsActive == nil &&
		p.ExpiresAt == nil &&
		p.Extra == nil
}

type Filter struct {
	City   string
	Search string
}

func newListing(id string, now time.Time, p CreateParams) Listing {
	return Listing{
		ID:          id,
		Kind:        p.Kind,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		Category:    p.Category,
		IsActive:    true,
		ExpiresAt:   p.ExpiresAt,
		Extra:       p.Extra,
		CreatedAt:   now,
	}
}

func (l *Listing) apply(p UpdateParams) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = p.Description
	}
	if p.City != nil {
		l.City = p.City
	}
	if p.Category != nil {
		l.Category = p.Category
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	if p.ExpiresAt != nil {
		l.ExpiresAt = p.ExpiresAt
	}
	if p.Extra != nil {
		l.Extra = p.Extra
	}
}

// Expired reports whether the listing's expiry timestamp has passed.
// Listings without one never expire.
func (l *Listing) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
