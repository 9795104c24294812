package handlers

import (
	"errors"
	"net/http"

	repo "github.com/rogerio-castellano/products-api/internal/repo"
)

const (
	msgInvalidJSON     = "invalid JSON body"
	msgProductNotFound = "product not found"
	msgProductDeleted  = "product deleted"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product. Stock defaults to 0 when omitted.
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.clientError(w, r, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if !validateCreate(req) {
		s.clientError(w, r, http.StatusBadRequest, msgNameAndPriceRequired)
		return
	}

	created, err := s.products.Create(r.Context(), newProduct(req))
	if err != nil {
		s.storeError(w, r, "insert failed", err)
		return
	}

	s.respond(w, r, http.StatusCreated, toResponse(created))
}

// GetProductsHandler godoc
// @Summary List all products
// @Description Returns every product ordered by ascending id.
// @Tags products
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.GetAll(r.Context())
	if err != nil {
		s.storeError(w, r, "query failed", err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toResponse(p)
	}
	s.respond(w, r, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
		return
	}

	product, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
			return
		}
		s.storeError(w, r, "query failed", err)
		return
	}

	s.respond(w, r, http.StatusOK, toResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update: omitted or null fields keep their stored value.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest false "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		s.clientError(w, r, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	updated, err := s.products.Update(r.Context(), id, toPatch(req))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
			return
		}
		s.storeError(w, r, "update failed", err)
		return
	}

	s.respond(w, r, http.StatusOK, toResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} DeleteProductResult
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
		return
	}

	deleted, err := s.products.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			s.clientError(w, r, http.StatusNotFound, msgProductNotFound)
			return
		}
		s.storeError(w, r, "delete failed", err)
		return
	}

	s.respond(w, r, http.StatusOK, DeleteProductResult{
		Message: msgProductDeleted,
		Product: DeletedProduct{ID: deleted.ID, Name: deleted.Name},
	})
}
