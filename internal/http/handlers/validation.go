package handlers

import (
	"strings"

	"github.com/rogerio-castellano/products-api/internal/models"
)

const msgNameAndPriceRequired = "name & price required"

// validateCreate only checks presence: name must be a non-blank string and
// price must not be null. A price of 0 is accepted.
func validateCreate(req ProductRequest) bool {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return false
	}
	return req.Price != nil
}

func newProduct(req ProductRequest) models.Product {
	p := models.Product{Name: *req.Name, Price: *req.Price}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	return p
}

func toPatch(req ProductRequest) models.ProductPatch {
	return models.ProductPatch{Name: req.Name, Price: req.Price, Stock: req.Stock}
}

func toResponse(p models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}
