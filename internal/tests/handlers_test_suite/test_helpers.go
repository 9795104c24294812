package handlers_test_suite

import (
	"net/http"
	"net/http/httptest"
	"strings"

	handler "github.com/rogerio-castellano/products-api/internal/http/handlers"
	"github.com/rogerio-castellano/products-api/internal/http/router"
	"github.com/rogerio-castellano/products-api/internal/logger"
	"github.com/rogerio-castellano/products-api/internal/repo"
)

// newTestRouter returns a router over a fresh in-memory store, so ids start at 1.
func newTestRouter() (http.Handler, *repo.InMemoryProductRepository) {
	productRepo := repo.NewInMemoryProductRepository()
	return routerFor(productRepo), productRepo
}

func routerFor(products repo.ProductRepository, secrets ...string) http.Handler {
	server := handler.NewServer(products, logger.Discard(), secrets...)
	return router.NewRouter(server, router.Options{Logger: logger.Discard()})
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, body string) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/products", body)
}

// bodyString returns the response body without the trailing newline, if any.
func bodyString(w *httptest.ResponseRecorder) string {
	return strings.TrimSuffix(w.Body.String(), "\n")
}
