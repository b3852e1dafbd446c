package product

import (
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Weight      *string   `json:"weight,omitempty"`
	Dimensions  *string   `json:"dimensions,omitempty"`
	Specs       *string   `json:"specs,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateParams struct {
	StoreID     string
	Name        string
	Description *string
	Price       string
	Category    string
	Stock       int
	Weight      *string
	Dimensions  *string
	Specs       *string
	Tags        []string
	ImageURL    *string
}

type UpdateParams struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	Stock       *int
	Weight      *string
	Dimensions  *string
	Specs       *string
	Tags        []string
	ImageURL    *string
	IsActive    *bool
}

func (p UpdateParams) Empty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Price == nil &&
		p.Category == nil &&
		p.Stock == nil &&
		p.Weight == nil &&
		p.Dimensions == nil &&
		p.Specs == nil &&
		p.Tags == nil &&
		p.ImageURL == nil &&
		p.IsActive == nil
}

func newProduct(id string, now time.Time, p CreateParams) Product {
	price := p.Price
	if price == "" {
		price = "0.00"
	}
	return Product{
		ID:          id,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Category:    p.Category,
		Stock:       p.Stock,
		Weight:      p.Weight,
		Dimensions:  p.Dimensions,
		Specs:       p.Specs,
		Tags:        append([]string(nil), p.Tags...),
		ImageURL:    p.ImageURL,
		IsActive:    true,
		CreatedAt:   now,
	}
}

func (pr *Product) apply(p UpdateParams) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = p.Description
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.Category != nil {
		pr.Category = *p.Category
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	if p.Weight != nil {
		pr.Weight = p.Weight
	}
	if p.Dimensions != nil {
		pr.Dimensions = p.Dimensions
	}
	if p.Specs != nil {
		pr.Specs = p.Specs
	}
	if p.Tags != nil {
		pr.Tags = append([]string(nil), p.Tags...)
	}
	if p.ImageURL != nil {
		pr.ImageURL = p.ImageURL
	}
	if p.IsActive != nil {
		pr.IsActive = *p.IsActive
	}
}
