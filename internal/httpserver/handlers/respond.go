package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/lawdesk/internal/logger"
	"github.com/MrSnakeDoc/lawdesk/internal/view"
	"github.com/MrSnakeDoc/lawdesk/internal/view/wizard"
)

// maxEventBytes caps event request bodies.
const maxEventBytes = 16 << 10

var (
	errSessionNotFound  = errors.New("session not found")
	errEntryNotFound    = errors.New("entry not found")
	errDocumentNotFound = errors.New("document not found")
	errUnknownScreen    = errors.New("unknown screen")
	errUnknownKind      = errors.New("unknown catalog kind")
	errBadRequest       = errors.New("bad request")
)

type errorResponse struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := errorStatus(err)
	body := errorResponse{Error: err.Error()}

	var missing *wizard.MissingFieldsError
	if errors.As(err, &missing) {
		body.MissingFields = missing.Fields
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", logger.Error(err))
	} else {
		log.Debug("request rejected", logger.Int("status", status), logger.Error(err))
	}
	writeJSON(w, status, body)
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var missing *wizard.MissingFieldsError

	switch {
	case errors.Is(err, errSessionNotFound),
		errors.Is(err, errEntryNotFound),
		errors.Is(err, errDocumentNotFound),
		errors.Is(err, errUnknownScreen),
		errors.Is(err, errUnknownKind),
		errors.Is(err, view.ErrUnknownEntry):
		return http.StatusNotFound
	case errors.As(err, &missing),
		errors.Is(err, wizard.ErrUnknownTemplate),
		errors.Is(err, wizard.ErrUnknownField):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, view.ErrInvalidEvent),
		errors.Is(err, wizard.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// readEvent reads a bounded request body and decodes it with decode.
// Any failure is a client error.
func readEvent[E any](w http.ResponseWriter, r *http.Request, decode func([]byte) (E, error)) (E, error) {
	var zero E
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		return zero, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	ev, err := decode(body)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return ev, nil
}
