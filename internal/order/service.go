package order

import (
	"context"
	"errors"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/money"
	"marketplace-be/internal/product"
	"marketplace-be/internal/store"

	"go.uber.org/zap"
)

const numberAttempts = 3

// StoreDirectory and ProductDirectory are the slices of the store and
// product layers the dashboard aggregation needs.
type StoreDirectory interface {
	GetByOwner(ctx context.Context, ownerID string) ([]*store.Store, error)
}

type ProductDirectory interface {
	GetByStore(ctx context.Context, storeID string) ([]*product.Product, error)
}

type CheckoutParams struct {
	CustomerID      string
	StoreID         string
	Items           []Item
	ShippingAddress map[string]any
}

// DashboardStats is the per-owner aggregate recomputed on demand by
// walking the owner's stores. Cancelled orders never count toward
// revenue or order totals.
type DashboardStats struct {
	StoreCount     int            `json:"storeCount"`
	TotalOrders    int            `json:"totalOrders"`
	OrdersByStatus map[Status]int `json:"ordersByStatus"`
	TotalRevenue   string         `json:"totalRevenue"`
	TotalProducts  int            `json:"totalProducts"`
	ActiveProducts int            `json:"activeProducts"`
}

type Service interface {
	Checkout(ctx context.Context, p CheckoutParams) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	GetByStore(ctx context.Context, storeID string) ([]*Order, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, next Status) (*Order, error)
	GetDashboardStats(ctx context.Context, ownerID string) (*DashboardStats, error)
	GetTotalRevenue(ctx context.Context, ownerID string) (string, error)
}

type service struct {
	repo     Repository
	stores   StoreDirectory
	products ProductDirectory
}

func NewService(repo Repository, stores StoreDirectory, products ProductDirectory) Service {
	return &service{repo: repo, stores: stores, products: products}
}

func (s *service) Checkout(ctx context.Context, p CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx)

	if p.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	if p.StoreID == "" {
		return nil, ErrStoreRequired
	}
	if len(p.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	total := money.Zero()
	for _, item := range p.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidItem
		}
		line, err := money.Mul(item.Price, item.Quantity)
		if err != nil {
			return nil, ErrInvalidItem
		}
		total, err = money.Add(total, line)
		if err != nil {
			return nil, err
		}
	}

	// Order numbers are probabilistically unique; retry a few times
	// before giving up on a collision streak.
	var created *Order
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		created, err = s.repo.Create(ctx, CreateParams{
			OrderNumber:     GenerateOrderNumber(),
			CustomerID:      p.CustomerID,
			StoreID:         p.StoreID,
			TotalAmount:     total,
			Items:           p.Items,
			ShippingAddress: p.ShippingAddress,
		})
		if !errors.Is(err, ErrOrderNumberTaken) {
			break
		}
		log.Warn("order number collision, retrying",
			zap.Int("attempt", attempt+1),
		)
	}
	if errors.Is(err, ErrOrderNumberTaken) {
		return nil, ErrNumberGenExhausted
	}
	if err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("order_number", created.OrderNumber),
		zap.String("total", created.TotalAmount),
	)

	return created, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

func (s *service) GetByStore(ctx context.Context, storeID string) ([]*Order, error) {
	return s.repo.GetByStore(ctx, storeID)
}

// GetByOwner collects orders across every store the owner holds.
func (s *service) GetByOwner(ctx context.Context, ownerID string) ([]*Order, error) {
	stores, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	orders := []*Order{}
	for _, st := range stores {
		batch, err := s.repo.GetByStore(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, batch...)
	}
	return orders, nil
}

// UpdateStatus enforces the transition table before persisting.
func (s *service) UpdateStatus(ctx context.Context, id string, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		logger.FromCtx(ctx).Warn("rejected status transition",
			zap.String("order_id", id),
			zap.String("from", string(current.Status)),
			zap.String("to", string(next)),
		)
		return nil, ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, next)
}

func (s *service) GetDashboardStats(ctx context.Context, ownerID string) (*DashboardStats, error) {
	stores, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		StoreCount:     len(stores),
		OrdersByStatus: map[Status]int{},
		TotalRevenue:   money.Zero(),
	}

	for _, st := range stores {
		orders, err := s.repo.GetByStore(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		for _, o := range orders {
			stats.OrdersByStatus[o.Status]++
			if o.Status == StatusCancelled {
				continue
			}
			stats.TotalOrders++
			stats.TotalRevenue, err = money.Add(stats.TotalRevenue, o.TotalAmount)
			if err != nil {
				return nil, err
			}
		}

		products, err := s.products.GetByStore(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		stats.TotalProducts += len(products)
		for _, pr := range products {
			if pr.IsActive {
				stats.ActiveProducts++
			}
		}
	}

	return stats, nil
}

func (s *service) GetTotalRevenue(ctx context.Context, ownerID string) (string, error) {
	stats, err := s.GetDashboardStats(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return stats.TotalRevenue, nil
}
