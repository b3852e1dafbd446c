package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows(pr Product) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "store_id", "name", "description", "price", "category", "stock",
		"weight", "dimensions", "specs", "tags", "image_url", "is_active", "created_at",
	}).AddRow(
		pr.ID, pr.StoreID, pr.Name, pr.Description, pr.Price, pr.Category, pr.Stock,
		pr.Weight, pr.Dimensions, pr.Specs, []byte(`[]`), pr.ImageURL, pr.IsActive, pr.CreatedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO products").
			WithArgs(
				sqlmock.AnyArg(), "s-1", "Widget", nil, "19.99", "tools", 0,
				nil, nil, nil, sqlmock.AnyArg(), nil, true, sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		pr, err := repo.Create(ctx, CreateParams{
			StoreID: "s-1", Name: "Widget", Price: "19.99", Category: "tools",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, pr.ID)
		assert.True(t, pr.IsActive)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO products").WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, CreateParams{StoreID: "s-1", Name: "Widget"})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	seeded := Product{
		ID: "p-1", StoreID: "s-1", Name: "Widget", Price: "19.99",
		Category: "tools", IsActive: true, CreatedAt: time.Now().UTC(),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnRows(productRows(seeded))

		pr, err := repo.GetByID(ctx, "p-1")
		assert.NoError(t, err)
		assert.Equal(t, "Widget", pr.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_GetByStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{
		"id", "store_id", "name", "description", "price", "category", "stock",
		"weight", "dimensions", "specs", "tags", "image_url", "is_active", "created_at",
	}).
		AddRow("p-1", "s-1", "A", nil, "1.00", "", 0, nil, nil, nil, []byte(`[]`), nil, true, time.Now().UTC()).
		AddRow("p-2", "s-1", "B", nil, "2.00", "", 0, nil, nil, nil, []byte(`[]`), nil, true, time.Now().UTC())

	mock.ExpectQuery(`SELECT .* FROM products WHERE store_id = \$1`).
		WithArgs("s-1").
		WillReturnRows(rows)

	products, err := repo.GetByStore(ctx, "s-1")
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("PartialPatch", func(t *testing.T) {
		price := "24.99"
		stock := 5
		updated := Product{
			ID: "p-1", StoreID: "s-1", Name: "Widget", Price: price,
			Stock: stock, IsActive: true, CreatedAt: time.Now().UTC(),
		}

		mock.ExpectQuery(`UPDATE products SET price = \$1, stock = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(price, stock, "p-1").
			WillReturnRows(productRows(updated))

		pr, err := repo.Update(ctx, "p-1", UpdateParams{Price: &price, Stock: &stock})
		assert.NoError(t, err)
		assert.Equal(t, price, pr.Price)
	})

	t.Run("NotFound", func(t *testing.T) {
		price := "24.99"
		mock.ExpectQuery(`UPDATE products SET price = \$1 WHERE id = \$2 RETURNING`).
			WithArgs(price, "missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Update(ctx, "missing", UpdateParams{Price: &price})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Delete(ctx, "p-1")
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("AlreadyGone", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
			WithArgs("p-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Delete(ctx, "p-1")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
