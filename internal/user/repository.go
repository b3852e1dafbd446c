package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"marketplace-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p CreateParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, id string, p UpdateParams) (*User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = "id, username, email, password_hash, full_name, phone, country, city, role, is_active, created_at"

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Phone, &u.Country, &u.City, &u.Role, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*User, error) {
	log := logger.FromCtx(ctx)

	u := newUser(uuid.NewString(), time.Now().UTC(), p)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, full_name, phone, country, city, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName,
		u.Phone, u.Country, u.City, u.Role, u.IsActive, u.CreatedAt,
	)
	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", p.Username),
			zap.Error(err),
		)
		if strings.Contains(err.Error(), "users_username_key") {
			return nil, ErrUsernameTaken
		}
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *repository) List(ctx context.Context) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repository) Update(ctx context.Context, id string, p UpdateParams) (*User, error) {
	if p.Empty() {
		return r.GetByID(ctx, id)
	}

	set := []string{}
	args := []any{}

	add := func(col string, v any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.FullName != nil {
		add("full_name", *p.FullName)
	}
	if p.Phone != nil {
		add("phone", *p.Phone)
	}
	if p.Country != nil {
		add("country", *p.Country)
	}
	if p.City != nil {
		add("city", *p.City)
	}
	if p.Role != nil {
		add("role", string(*p.Role))
	}
	if p.IsActive != nil {
		add("is_active", *p.IsActive)
	}

	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING "+userColumns,
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, ErrEmailTaken
		}
		logger.FromCtx(ctx).Error("db: failed to update user",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
