package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(u User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "full_name",
		"phone", "country", "city", "role", "is_active", "created_at",
	}).AddRow(
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName,
		u.Phone, u.Country, u.City, u.Role, u.IsActive, u.CreatedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	params := CreateParams{
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: "hashed_password",
		FullName:     "John Doe",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(
				sqlmock.AnyArg(), "john", "john@example.com", "hashed_password", "John Doe",
				nil, nil, nil, RoleCustomer, true, sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		u, err := repo.Create(ctx, params)
		assert.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "john", u.Username)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.IsActive)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		_, err := repo.Create(ctx, params)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, err := repo.Create(ctx, params)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, params)
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	seeded := User{
		ID:           "u-1",
		Username:     "john",
		Email:        "john@example.com",
		PasswordHash: "hashed",
		FullName:     "John Doe",
		Role:         RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs("u-1").
			WillReturnRows(userRows(seeded))

		u, err := repo.GetByID(ctx, "u-1")
		assert.NoError(t, err)
		assert.Equal(t, "john", u.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("PartialPatch", func(t *testing.T) {
		name := "Jane Doe"
		active := false
		updated := User{
			ID: "u-1", Username: "john", Email: "john@example.com",
			PasswordHash: "hashed", FullName: name, Role: RoleCustomer,
			IsActive: active, CreatedAt: time.Now().UTC(),
		}

		mock.ExpectQuery(`UPDATE users SET full_name = \$1, is_active = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(name, active, "u-1").
			WillReturnRows(userRows(updated))

		u, err := repo.Update(ctx, "u-1", UpdateParams{FullName: &name, IsActive: &active})
		assert.NoError(t, err)
		assert.Equal(t, name, u.FullName)
		assert.False(t, u.IsActive)
	})

	t.Run("EmptyPatchIsGet", func(t *testing.T) {
		existing := User{
			ID: "u-1", Username: "john", Email: "john@example.com",
			PasswordHash: "hashed", FullName: "John Doe", Role: RoleCustomer,
			IsActive: true, CreatedAt: time.Now().UTC(),
		}

		mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
			WithArgs("u-1").
			WillReturnRows(userRows(existing))

		u, err := repo.Update(ctx, "u-1", UpdateParams{})
		assert.NoError(t, err)
		assert.Equal(t, "John Doe", u.FullName)
	})

	t.Run("NotFound", func(t *testing.T) {
		name := "Jane Doe"
		mock.ExpectQuery(`UPDATE users SET`).
			WithArgs(name, "missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Update(ctx, "missing", UpdateParams{FullName: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(ctx, "u-1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("SecondCallReturnsFalse", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(ctx, "u-1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
