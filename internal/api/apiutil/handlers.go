// internal/api/apiutil/handlers.go
package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/McNabAndy/tennisclub-reservation-api/internal/club"
)

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteDomainError maps the domain error taxonomy onto HTTP statuses:
// validation failures are 400, missing entities 404, court number conflicts
// 409. Anything else is an infrastructure failure, logged and reported
// as 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var validationErr club.ValidationError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Reason
	case errors.Is(err, club.ErrCourtNotFound),
		errors.Is(err, club.ErrSurfaceTypeNotFound),
		errors.Is(err, club.ErrReservationNotFound),
		errors.Is(err, club.ErrUserNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, club.ErrCourtNumberExists):
		status = http.StatusConflict
		message = err.Error()
	default:
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}

	if writeErr := WriteJSON(w, status, errorResponse{Error: message, Status: status}); writeErr != nil {
		log.Ctx(r.Context()).Error().Err(writeErr).Msg("Failed to write error response")
	}
}
