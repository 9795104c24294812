package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	mw "github.com/rogerio-castellano/products-api/internal/http/middleware"
)

const maxBodyBytes = 1 << 20 // one megabyte

var errEmptyBody = errors.New("request body is empty")

// readJSON tries to read the body of a request and converts it into JSON.
// An empty body yields errEmptyBody so callers can treat it as "no fields".
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client.
// HTML characters such as & are written as-is.
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		s.logger.Error("write_response_failed", "error", err, "request_id", mw.RequestIDFromContext(r.Context()))
	}
}

func (s *Server) clientError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.respond(w, r, status, ErrorResponse{Error: message})
}

// storeError reports a store fault as a 500 carrying the redacted diagnostic.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	detail := s.redact(err.Error())
	s.logger.Error(message,
		"error", detail,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", mw.RequestIDFromContext(r.Context()),
	)
	s.respond(w, r, http.StatusInternalServerError, ErrorResponse{Error: message, Detail: detail})
}

// productID reads the {id} path parameter. Anything that is not a positive
// integer cannot have been issued by a store.
func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
