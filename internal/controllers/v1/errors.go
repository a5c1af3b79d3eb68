package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the HTTP status for an error.
//
// Errors that are not classified are caused by the request, e.g.
// binding errors, and result in a 400.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrGeneral), errors.Is(err, models.ErrPersistence):
		return http.StatusInternalServerError
	}

	return http.StatusBadRequest
}

// errorMessage returns the message for the error. Server errors are logged.
func errorMessage(c *gin.Context, err error) *string {
	if status(err) >= http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	s := err.Error()
	return &s
}

// notFound is the error for resources that do not exist or belong
// to another user.
func notFound(resource string) error {
	return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, resource)
}
