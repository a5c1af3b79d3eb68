// Package auth implements the auth collaborator: password logins backed by
// bcrypt, sessions stored in the database and signed session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// claims are the claims of a session token. The token ID is the ID
// of the session.
type claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func signToken(secret []byte, session models.Session) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: session.IdentityID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   session.IdentityID.String(),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	return t.SignedString(secret)
}

// errTokenExpired is returned by parseToken for tokens that are
// well-formed, but past their expiry.
var errTokenExpired = errors.New("token expired")

// parseToken verifies the token and returns the session and user ID.
func parseToken(secret []byte, token string, now time.Time) (sessionID, userID uuid.UUID, err error) {
	var c claims
	_, err = jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if errors.Is(err, jwt.ErrTokenExpired) {
		return uuid.Nil, uuid.Nil, errTokenExpired
	} else if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %w", models.ErrTokenInvalid, err)
	}

	sessionID, err = uuid.Parse(c.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: session ID: %w", models.ErrTokenInvalid, err)
	}

	userID, err = uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: user_id: %w", models.ErrTokenInvalid, err)
	}

	return sessionID, userID, nil
}
