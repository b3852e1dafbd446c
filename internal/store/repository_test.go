package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRows(s Store) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "name", "description", "is_active", "settings", "created_at",
	}).AddRow(
		s.ID, s.OwnerID, s.Name, s.Description, s.IsActive,
		[]byte(`{"category":"electronics"}`), s.CreatedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO stores").
			WithArgs(
				sqlmock.AnyArg(), "u-1", "Acme Store", nil, true,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s, err := repo.Create(ctx, CreateParams{OwnerID: "u-1", Name: "Acme Store"})
		assert.NoError(t, err)
		assert.NotEmpty(t, s.ID)
		assert.True(t, s.IsActive)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO stores").WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, CreateParams{OwnerID: "u-1", Name: "Acme Store"})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	seeded := Store{
		ID: "s-1", OwnerID: "u-1", Name: "Acme Store",
		IsActive: true, CreatedAt: time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM stores WHERE id = \$1`).
			WithArgs("s-1").
			WillReturnRows(storeRows(seeded))

		s, err := repo.GetByID(ctx, "s-1")
		assert.NoError(t, err)
		assert.Equal(t, "Acme Store", s.Name)
		assert.Equal(t, "electronics", s.Settings["category"])
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM stores WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "name", "description", "is_active", "settings", "created_at",
	}).
		AddRow("s-1", "u-1", "One", nil, true, []byte(`{}`), time.Now().UTC()).
		AddRow("s-2", "u-2", "Two", nil, true, []byte(`{}`), time.Now().UTC())

	mock.ExpectQuery("SELECT .* FROM stores WHERE is_active = true").
		WillReturnRows(rows)

	stores, err := repo.ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("SettingsMergeFetchesCurrent", func(t *testing.T) {
		current := Store{
			ID: "s-1", OwnerID: "u-1", Name: "Acme Store",
			IsActive: true, CreatedAt: time.Now().UTC(),
		}

		mock.ExpectQuery(`SELECT .* FROM stores WHERE id = \$1`).
			WithArgs("s-1").
			WillReturnRows(storeRows(current))

		mock.ExpectQuery(`UPDATE stores SET settings = \$1 WHERE id = \$2 RETURNING`).
			WithArgs(sqlmock.AnyArg(), "s-1").
			WillReturnRows(storeRows(current))

		_, err := repo.Update(ctx, "s-1", UpdateParams{
			Settings: Settings{"address": "2 Side St"},
		})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		name := "New Name"
		mock.ExpectQuery(`UPDATE stores SET name = \$1 WHERE id = \$2 RETURNING`).
			WithArgs(name, "missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Update(ctx, "missing", UpdateParams{Name: &name})
		assert.ErrorIs(t, err, ErrStoreNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM stores WHERE id = \$1`).
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(ctx, "s-1")
	assert.NoError(t, err)
	assert.True(t, ok)
}
