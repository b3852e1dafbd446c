package store

import (
	"time"
)

// Settings is the free-form configuration blob attached to a store
// (category, address, working hours, shipping). It is persisted as JSON
// and not validated beyond being well-formed.
type Settings map[string]any

type Store struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateParams struct {
	OwnerID     string
	Name        string
	Description *string
	Settings    Settings
}

// UpdateParams is a partial patch. Settings keys are merged onto the
// existing blob rather than replacing it wholesale.
type UpdateParams struct {
	Name        *string
	Description *string
	IsActive    *bool
	Settings    Settings
}

func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Description == nil && p.IsActive == nil && len(p.Settings) == 0
}

// Filter holds the three optional store-list filters; empty string means
// "not set". They compose with logical AND.
type Filter struct {
	Category string
	Search   string
	City     string
}

// DefaultSettings is what a merchant's auto-provisioned store starts with.
func DefaultSettings() Settings {
	return Settings{
		"workingHours": map[string]any{"open": "09:00", "close": "22:00"},
		"workingDays":  []any{"monday", "tuesday", "wednesday", "thursday", "friday"},
	}
}

// clone guards against callers mutating a shared settings map.
func (s Settings) clone() Settings {
	if s == nil {
		return Settings{}
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func newStore(id string, now time.Time, p CreateParams) Store {
	settings := p.Settings
	if settings == nil {
		settings = Settings{}
	}
	return Store{
		ID:          id,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    true,
		Settings:    settings,
		CreatedAt:   now,
	}
}

func (s *Store) apply(p UpdateParams) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if len(p.Settings) > 0 {
		if s.Settings == nil {
			s.Settings = Settings{}
		}
		for k, v := range p.Settings {
			s.Settings[k] = v
		}
	}
}
