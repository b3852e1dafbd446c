package store

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
	Create(ctx context.Context, p CreateParams) (*Store, error)
	GetByID(ctx context.Context, id string) (*Store, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Store, error)
	ListActive(ctx context.Context) ([]*Store, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Store, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const storeColumns = "id, owner_id, name, description, is_active, settings, created_at"

func scanStore(row interface{ Scan(...any) error }) (*Store, error) {
	var s Store
	var rawSettings []byte
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description,
		&s.IsActive, &rawSettings, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawSettings) > 0 {
		if err := json.Unmarshal(rawSettings, &s.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	if s.Settings == nil {
		s.Settings = Settings{}
	}
	return &s, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Store, error) {
	log := logger.FromCtx(ctx)

	s := newStore(uuid.NewString(), time.Now().UTC(), p)

	rawSettings, err := json.Marshal(s.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO stores (id, owner_id, name, description, is_active, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		s.ID, s.OwnerID, s.Name, s.Description, s.IsActive, rawSettings, s.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert store",
			zap.String("owner_id", p.OwnerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE id = $1", id)

	s, err := scanStore(row)
	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) GetByOwner(ctx context.Context, ownerID string) ([]*Store, error) {
	return r.queryStores(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE owner_id = $1 ORDER BY created_at ASC",
		ownerID)
}

func (r *repository) ListActive(ctx context.Context) ([]*Store, error) {
	return r.queryStores(ctx,
		"SELECT "+storeColumns+" FROM stores WHERE is_active = true ORDER BY created_at ASC")
}

func (r *repository) queryStores(ctx context.Context, query string, args ...any) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	stores := []*Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, p UpdateParams) (*Store, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	// Settings patches merge key-by-key, so fetch the current blob first.
	if len(p.Settings) > 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		merged := current.Settings
		for k, v := range p.Settings {
			merged[k] = v
		}
		p.Settings = merged
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
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if len(p.Settings) > 0 {
		raw, err := json.Marshal(p.Settings)
		if err != nil {
			return nil, fmt.Errorf("encode settings: %w", err)
		}
		add("settings", raw)
	}

	query := fmt.Sprintf(
		"UPDATE stores SET %s WHERE id = $%d RETURNING "+storeColumns,
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	s, err := scanStore(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update store",
			zap.String("store_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return s, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM stores WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
