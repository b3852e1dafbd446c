package order

import (
	"time"
)

type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type Order struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"orderNumber"`
	CustomerID      string         `json:"customerId"`
	StoreID         string         `json:"storeId"`
	Status          Status         `json:"status"`
	TotalAmount     string         `json:"totalAmount"`
	Items           []Item         `json:"items"`
	ShippingAddress map[string]any `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type CreateParams struct {
	OrderNumber     string
	CustomerID      string
	StoreID         string
	TotalAmount     string
	Items           []Item
	ShippingAddress map[string]any
}

// UpdateParams patches mutable order fields; id, orderNumber, and createdAt
// stay fixed. Status changes go through UpdateStatus so the transition
// guard cannot be bypassed.
type UpdateParams struct {
	TotalAmount     *string
	Items           []Item
	ShippingAddress map[string]any
}

func (p UpdateParams) Empty() bool {
	return p.TotalAmount == nil && p.Items == nil && p.ShippingAddress == nil
}

func newOrder(id string, now time.Time, p CreateParams) Order {
	total := p.TotalAmount
	if total == "" {
		total = "0.00"
	}
	return Order{
		ID:              id,
		OrderNumber:     p.OrderNumber,
		CustomerID:      p.CustomerID,
		StoreID:         p.StoreID,
		Status:          StatusPending,
		TotalAmount:     total,
		Items:           append([]Item(nil), p.Items...),
		ShippingAddress: p.ShippingAddress,
		CreatedAt:       now,
	}
}

func (o *Order) apply(p UpdateParams) {
	if p.TotalAmount != nil {
		o.TotalAmount = *p.TotalAmount
	}
	if p.Items != nil {
		o.Items = append([]Item(nil), p.Items...)
	}
	if p.ShippingAddress != nil {
		o.ShippingAddress = p.ShippingAddress
	}
}
