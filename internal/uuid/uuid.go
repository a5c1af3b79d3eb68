// Package uuid wraps google/uuid so that IDs can be bound from URI parameters.
package uuid

import (
	"github.com/finanzas-app/backend/internal/httputil"
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses URI and query parameters with
// https://pkg.go.dev/github.com/google/uuid#Parse
//
// An empty parameter is the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return httputil.ErrInvalidUUID
	}

	*u = UUID{parsed}
	return nil
}
