package handlers

// ProductRequest is the body of create and update calls. Pointer fields tell an
// omitted or null value apart from a zero value.
type ProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Stock *int     `json:"stock"`
}

type ProductResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type DeletedProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DeleteProductResult struct {
	Message string         `json:"message"`
	Product DeletedProduct `json:"product"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type HealthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
