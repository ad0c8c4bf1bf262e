package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goliatone/go-plantillas/pkg/plantilla"
	"github.com/goliatone/go-plantillas/pkg/store"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []string            `json:"errors,omitempty"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

func replyJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func replyError(w http.ResponseWriter, status int, message string) {
	replyJSON(w, status, errorResponse{Message: message})
}

// replyStoreError maps repository errors onto HTTP statuses.
func (s *Server) replyStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, plantilla.ErrNotFound):
		replyError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidTransition):
		replyError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidInput):
		replyError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("httpapi: request failed")
		replyError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return data, nil
}

func decodeJSONBody(r *http.Request, placeholder any) error {
	data, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, placeholder); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	return nil
}
