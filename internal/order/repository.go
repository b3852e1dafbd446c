package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p CreateParams) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*Order, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	GetByStore(ctx context.Context, storeID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Order, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = "id, order_number, customer_id, store_id, status, total_amount, items, shipping_address, created_at"

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var rawItems, rawAddress []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.StoreID, &o.Status,
		&o.TotalAmount, &rawItems, &rawAddress, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &o.Items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	if len(rawAddress) > 0 {
		if err := json.Unmarshal(rawAddress, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx)
	defer metrics.TrackDBOperation("insert_order")(time.Now())

	o := newOrder(uuid.NewString(), time.Now().UTC(), p)

	rawItems, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	var rawAddress []byte
	if o.ShippingAddress != nil {
		rawAddress, err = json.Marshal(o.ShippingAddress)
		if err != nil {
			return nil, fmt.Errorf("encode shipping address: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_id, store_id, status, total_amount, items, shipping_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		o.ID, o.OrderNumber, o.CustomerID, o.StoreID, o.Status,
		o.TotalAmount, rawItems, rawAddress, o.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "orders_order_number_key") {
			return nil, ErrOrderNumberTaken
		}
		log.Error("db: failed to insert order",
			zap.String("store_id", p.StoreID),
			zap.Error(err),
		)
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) GetByOrderNumber(ctx context.Context, number string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE order_number = $1", number)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) GetByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE customer_id = $1 ORDER BY created_at DESC",
		customerID)
}

func (r *repository) GetByStore(ctx context.Context, storeID string) ([]*Order, error) {
	return r.queryOrders(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE store_id = $1 ORDER BY created_at DESC",
		storeID)
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) (*Order, error) {
	defer metrics.TrackDBOperation("update_order_status")(time.Now())

	row := r.db.QueryRowContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2 RETURNING "+orderColumns,
		status, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update order status",
			zap.String("order_id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return nil, err
	}
	return o, nil
}

func (r *repository) Update(ctx context.Context, id string, p UpdateParams) (*Order, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if p.TotalAmount != nil {
		add("total_amount", *p.TotalAmount)
	}
	if p.Items != nil {
		raw, err := json.Marshal(p.Items)
		if err != nil {
			return nil, fmt.Errorf("encode items: %w", err)
		}
		add("items", raw)
	}
	if p.ShippingAddress != nil {
		raw, err := json.Marshal(p.ShippingAddress)
		if err != nil {
			return nil, fmt.Errorf("encode shipping address: %w", err)
		}
		add("shipping_address", raw)
	}

	query := fmt.Sprintf(
		"UPDATE orders SET %s WHERE id = $%d RETURNING "+orderColumns,
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
