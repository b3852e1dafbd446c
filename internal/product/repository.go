package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p CreateParams) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByStore(ctx context.Context, storeID string) ([]*Product, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = "id, store_id, name, description, price, category, stock, weight, dimensions, specs, tags, image_url, is_active, created_at"

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var pr Product
	var rawTags []byte
	err := row.Scan(
		&pr.ID, &pr.StoreID, &pr.Name, &pr.Description, &pr.Price,
		&pr.Category, &pr.Stock, &pr.Weight, &pr.Dimensions, &pr.Specs,
		&rawTags, &pr.ImageURL, &pr.IsActive, &pr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &pr.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &pr, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx)

	pr := newProduct(uuid.NewString(), time.Now().UTC(), p)

	rawTags, err := json.Marshal(pr.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, description, price, category, stock, weight, dimensions, specs, tags, image_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		pr.ID, pr.StoreID, pr.Name, pr.Description, pr.Price,
		pr.Category, pr.Stock, pr.Weight, pr.Dimensions, pr.Specs,
		rawTags, pr.ImageURL, pr.IsActive, pr.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert product",
			zap.String("store_id", p.StoreID),
			zap.Error(err),
		)
		return nil, err
	}

	return &pr, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)

	pr, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	return pr, err
}

func (r *repository) GetByStore(ctx context.Context, storeID string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE store_id = $1 ORDER BY created_at ASC",
		storeID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		pr, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		products = append(products, pr)
	}
	return products, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, p UpdateParams) (*Product, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Stock != nil {
		add("stock", *p.Stock)
	}
	if p.Weight != nil {
		add("weight", *p.Weight)
	}
	if p.Dimensions != nil {
		add("dimensions", *p.Dimensions)
	}
	if p.Specs != nil {
		add("specs", *p.Specs)
	}
	if p.Tags != nil {
		raw, err := json.Marshal(p.Tags)
		if err != nil {
			return nil, fmt.Errorf("encode tags: %w", err)
		}
		add("tags", raw)
	}
	if p.ImageURL != nil {
		add("image_url", *p.ImageURL)
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING "+productColumns,
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	pr, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return pr, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
