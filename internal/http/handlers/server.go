package handlers

import (
	"log/slog"
	"strings"

	repo "github.com/rogerio-castellano/products-api/internal/repo"
)

// Server holds the dependencies shared by the HTTP handlers.
type Server struct {
	products repo.ProductRepository
	logger   *slog.Logger
	redactor *strings.Replacer
}

// NewServer wires the handlers to a product store. Any secret passed in is
// masked out of error details before they reach a client or a log line.
func NewServer(products repo.ProductRepository, logger *slog.Logger, secrets ...string) *Server {
	pairs := make([]string, 0, len(secrets)*2)
	for _, s := range secrets {
		if s != "" {
			pairs = append(pairs, s, "[REDACTED]")
		}
	}
	return &Server{
		products: products,
		logger:   logger,
		redactor: strings.NewReplacer(pairs...),
	}
}

func (s *Server) redact(text string) string {
	return s.redactor.Replace(text)
}
