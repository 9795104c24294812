package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// TestPostgresProductRepository runs against a live database when TEST_DATABASE_URL is set.
// Each subtest gets its own table in a throwaway schema.
func TestPostgresProductRepository(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	database, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ctx := context.Background()
	schema := "products_test_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	_, err = database.ExecContext(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize())
	require.NoError(t, err)
	t.Cleanup(func() {
		database.ExecContext(context.Background(), "DROP SCHEMA "+pgx.Identifier{schema}.Sanitize()+" CASCADE")
	})

	n := 0
	runProductRepositoryContract(t, func(t *testing.T) ProductRepository {
		n++
		table := pgx.Identifier{schema, "products_" + strconv.Itoa(n)}
		_, err := database.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (
			id    BIGSERIAL PRIMARY KEY,
			name  TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0
		)`, table.Sanitize()))
		require.NoError(t, err)
		return NewPostgresProductRepository(database, table, 3*time.Second)
	})
}
