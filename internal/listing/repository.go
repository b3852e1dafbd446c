package listing

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
	Create(ctx context.Context, p CreateParams) (*Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
	ListActiveByKind(ctx context.Context, kind Kind) ([]*Listing, error)
	Update(ctx context.Context, id string, p UpdateParams) (*Listing, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const listingColumns = "id, kind, owner_id, title, description, city, category, is_active, expires_at, extra, created_at"

func scanListing(row interface{ Scan(...any) error }) (*Listing, error) {
	var l Listing
	var rawExtra []byte
	err := row.Scan(
		&l.ID, &l.Kind, &l.OwnerID, &l.Title, &l.Description,
		&l.City, &l.Category, &l.IsActive, &l.ExpiresAt, &rawExtra, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(rawExtra) > 0 {
		if err := json.Unmarshal(rawExtra, &l.Extra); err != nil {
			return nil, fmt.Errorf("decode extra: %w", err)
		}
	}
	return &l, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Listing, error) {
	log := logger.FromCtx(ctx)

	l := newListing(uuid.NewString(), time.Now().UTC(), p)

	var rawExtra []byte
	var err error
	if l.Extra != nil {
		rawExtra, err = json.Marshal(l.Extra)
		if err != nil {
			return nil, fmt.Errorf("encode extra: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO listings (id, kind, owner_id, title, description, city, category, is_active, expires_at, extra, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		l.ID, l.Kind, l.OwnerID, l.Title, l.Description,
		l.City, l.Category, l.IsActive, l.ExpiresAt, rawExtra, l.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert listing",
			zap.String("kind", string(p.Kind)),
			zap.String("owner_id", p.OwnerID),
			zap.Error(err),
		)
		return nil, err
	}

	return &l, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Listing, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id = $1", id)

	l, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	return l, err
}

func (r *repository) GetByOwner(ctx context.Context, ownerID string) ([]*Listing, error) {
	return r.queryListings(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE owner_id = $1 ORDER BY created_at DESC",
		ownerID)
}

func (r *repository) ListActiveByKind(ctx context.Context, kind Kind) ([]*Listing, error) {
	return r.queryListings(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE kind = $1 AND is_active = true ORDER BY created_at DESC",
		kind)
}

func (r *repository) queryListings(ctx context.Context, query string, args ...any) ([]*Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	listings := []*Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, p UpdateParams) (*Listing, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if p.Title != nil {
		add("title", *p.Title)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}
	if p.ExpiresAt != nil {
		add("expires_at", *p.ExpiresAt)
	}
	if p.Extra != nil {
		raw, err := json.Marshal(p.Extra)
		if err != nil {
			return nil, fmt.Errorf("encode extra: %w", err)
		}
		add("extra", raw)
	}

	query := fmt.Sprintf(
		"UPDATE listings SET %s WHERE id = $%d RETURNING "+listingColumns,
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	l, err := scanListing(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrListingNotFound
	}
	return l, err
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
