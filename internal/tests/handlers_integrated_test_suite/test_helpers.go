package handlers_integrated_test_suite

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rogerio-castellano/products-api/internal/db"
	handler "github.com/rogerio-castellano/products-api/internal/http/handlers"
	"github.com/rogerio-castellano/products-api/internal/http/router"
	"github.com/rogerio-castellano/products-api/internal/logger"
	"github.com/rogerio-castellano/products-api/internal/repo"
)

var productsTable = pgx.Identifier{"products_schema", "products"}

// setupTestRouter connects to dbURL, makes sure the products table exists and
// returns a router backed by it.
func setupTestRouter(dbURL string) (http.Handler, *sql.DB, error) {
	database, err := db.ConnectPostgres(dbURL, 5*time.Second)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS ` + pgx.Identifier{productsTable[0]}.Sanitize(),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id    BIGSERIAL PRIMARY KEY,
			name  TEXT NOT NULL,
			price NUMERIC(12, 2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0
		)`, productsTable.Sanitize()),
	}
	for _, stmt := range stmts {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("prepare products table: %w", err)
		}
	}

	products := repo.NewPostgresProductRepository(database, productsTable, 3*time.Second)
	server := handler.NewServer(products, logger.Discard(), dbURL)
	return router.NewRouter(server, router.Options{Logger: logger.Discard()}), database, nil
}

func clearAllProducts(database *sql.DB) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		_, err := database.ExecContext(ctx, "TRUNCATE TABLE "+productsTable.Sanitize()+" RESTART IDENTITY")
		if err != nil {
			fmt.Println(fmt.Errorf("failed to truncate products table: %w", err))
		}
	}
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
