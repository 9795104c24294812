package handlers_integrated_test_suite

import (
	"net/http"
	"os"
	"testing"
)

func newIntegratedRouter(t *testing.T) http.Handler {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	r, database, err := setupTestRouter(dbURL)
	if err != nil {
		t.Fatalf("could not set up database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	truncate := clearAllProducts(database)
	truncate()
	t.Cleanup(truncate)
	return r
}

func TestProductLifecycle_Postgres(t *testing.T) {
	r := newIntegratedRouter(t)

	steps := []struct {
		method     string
		path       string
		body       string
		expectCode int
		expectBody string
	}{
		{http.MethodPost, "/products", `{"name":"Widget","price":9.99}`, http.StatusCreated, `{"id":1,"name":"Widget","price":9.99,"stock":0}`},
		{http.MethodGet, "/products/1", "", http.StatusOK, `{"id":1,"name":"Widget","price":9.99,"stock":0}`},
		{http.MethodPut, "/products/1", `{"stock":5}`, http.StatusOK, `{"id":1,"name":"Widget","price":9.99,"stock":5}`},
		{http.MethodGet, "/products", "", http.StatusOK, `[{"id":1,"name":"Widget","price":9.99,"stock":5}]`},
		{http.MethodDelete, "/products/1", "", http.StatusOK, `{"message":"product deleted","product":{"id":1,"name":"Widget"}}`},
		{http.MethodGet, "/products/1", "", http.StatusNotFound, `{"error":"product not found"}`},
		{http.MethodDelete, "/products/1", "", http.StatusNotFound, `{"error":"product not found"}`},
		{http.MethodPost, "/products", `{"name":"NoPrice"}`, http.StatusBadRequest, `{"error":"name & price required"}`},
		{http.MethodGet, "/db/health", "", http.StatusOK, `{"ok":true}`},
	}

	for _, step := range steps {
		w := doRequest(r, step.method, step.path, step.body)
		if w.Code != step.expectCode {
			t.Fatalf("%s %s: expected status %d, got %d (%s)", step.method, step.path, step.expectCode, w.Code, w.Body.String())
		}
		if got := w.Body.String(); got != step.expectBody {
			t.Fatalf("%s %s: expected body %s, got %s", step.method, step.path, step.expectBody, got)
		}
	}
}

func TestUpdateProduct_Postgres_NotFound(t *testing.T) {
	r := newIntegratedRouter(t)

	w := doRequest(r, http.MethodPut, "/products/99", `{"price":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
