package repo

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keebstore/storefront/internal/db"
	"github.com/keebstore/storefront/internal/models"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS products (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	category    TEXT NOT NULL,
	description TEXT,
	price       BIGINT NOT NULL,
	image_url   TEXT,
	stock       INTEGER,
	featured    BOOLEAN,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS orders (
	id               BIGSERIAL PRIMARY KEY,
	customer_name    TEXT NOT NULL,
	customer_email   TEXT NOT NULL,
	customer_phone   TEXT NOT NULL,
	customer_address TEXT NOT NULL,
	product_id       TEXT NOT NULL,
	quantity         INTEGER NOT NULL,
	total_price      BIGINT NOT NULL,
	notes            TEXT,
	status           TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);`

// Requires a running Postgres; set STOREFRONT_TEST_DATABASE_URL to enable.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv("STOREFRONT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	database, err := db.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.ExecContext(ctx, testSchema)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `TRUNCATE products, orders`)
	require.NoError(t, err)
	return database
}

func TestPostgresProductRepository(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, `INSERT INTO products (id, name, category, price, stock, created_at) VALUES
		('a', 'Gateron Yellow', 'switches', 30000, NULL, '2025-09-25T08:00:00Z'),
		('b', 'Boba U4T', 'switches', 45000, 0, '2025-09-26T08:00:00Z')`)
	require.NoError(t, err)

	products := NewPostgresProductRepository(database, time.Second)
	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID, "newest first")
	assert.True(t, all[0].SoldOut())
	assert.False(t, all[1].StockTracked())
	assert.Equal(t, "2025-09-25T08:00:00Z", all[1].CreatedAt)
}

func TestPostgresOrderRepository(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	orders := NewPostgresOrderRepository(database, time.Second)
	require.NoError(t, orders.Create(ctx, models.Order{
		CustomerName: "Dita", CustomerEmail: "d@example.com", CustomerPhone: "1", CustomerAddress: "x",
		ProductID: "b", Quantity: 3, TotalPrice: 135000, Status: models.OrderStatusPending,
	}))

	var total int64
	require.NoError(t, database.QueryRowContext(ctx, `SELECT total_price FROM orders WHERE product_id = 'b'`).Scan(&total))
	assert.Equal(t, int64(135000), total)
}
