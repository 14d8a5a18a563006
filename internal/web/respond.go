// Package web holds the JSON envelope helpers shared by every module handler.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/kuma-mall/admin-backend/internal/apperr"
	"github.com/kuma-mall/admin-backend/internal/validate"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Message is the body of every error response and of mutations that only report success.
type Message struct {
	Message string `json:"message"`
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Error maps err to a status code and writes {"message": ...}. Internal failures are
// logged with the request id; their detail is never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := StatusOf(kind)
	if kind == apperr.KindInternal {
		logger.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	JSON(w, status, Message{Message: apperr.MessageOf(err)})
}

// StatusOf returns the HTTP status for a failure kind.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON body into dst. Malformed or empty bodies become validation errors.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Validationf("%s has an invalid type", typeErr.Field)
		}
		return &apperr.Error{Kind: apperr.KindValidation, Message: "invalid JSON body", Err: err}
	}
	return nil
}

// DecodeAndValidate decodes a body and runs struct validation on it.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := Decode(r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
