package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultSessionTTL is the lifetime of a session if none is configured.
const DefaultSessionTTL = 24 * time.Hour

// Repository implements repositories.AuthRepository on gorm.
type Repository struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	broker *Broker

	// Now returns the current time. It is used for session expiry.
	Now func() time.Time
}

// NewRepository returns a Repository that signs session tokens with
// the secret. A ttl of 0 uses DefaultSessionTTL.
func NewRepository(db *gorm.DB, secret []byte, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &Repository{
		db:     db,
		secret: secret,
		ttl:    ttl,
		broker: NewBroker(),
		Now:    time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new identity and signs it in.
func (r *Repository) SignUp(ctx context.Context, name, email, password string) (models.AuthSession, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.AuthSession{}, models.ErrCredentialsMissing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("%w: %w", models.ErrGeneral, err)
	}

	identity := models.Identity{
		Email:        email,
		PasswordHash: string(hash),
	}

	if name = strings.TrimSpace(name); name != "" {
		identity.FullName = &name
	}

	err = r.db.WithContext(ctx).Create(&identity).Error
	if err != nil {
		if errors.Is(err, models.ErrAuth) || errors.Is(err, models.ErrGeneral) {
			return models.AuthSession{}, err
		}
		return models.AuthSession{}, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	return r.startSession(ctx, identity)
}

// SignIn verifies the credentials and starts a new session.
func (r *Repository) SignIn(ctx context.Context, email, password string) (models.AuthSession, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return models.AuthSession{}, models.ErrCredentialsMissing
	}

	var identity models.Identity
	err := r.db.WithContext(ctx).Where(&models.Identity{Email: email}).First(&identity).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.AuthSession{}, models.ErrInvalidCredentials
	} else if err != nil {
		return models.AuthSession{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password))
	if err != nil {
		return models.AuthSession{}, models.ErrInvalidCredentials
	}

	return r.startSession(ctx, identity)
}

func (r *Repository) startSession(ctx context.Context, identity models.Identity) (models.AuthSession, error) {
	now := r.Now().UTC()
	session := models.Session{
		DefaultModel: models.DefaultModel{CreatedAt: now},
		IdentityID:   identity.ID,
		ExpiresAt:    now.Add(r.ttl),
	}

	err := r.db.WithContext(ctx).Create(&session).Error
	if err != nil {
		return models.AuthSession{}, err
	}

	token, err := signToken(r.secret, session)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("%w: %w", models.ErrGeneral, err)
	}

	log.Debug().Str("user", identity.ID.String()).Str("session", session.ID.String()).Msg("session started")
	r.broker.Publish(models.SessionEvent{
		Type:   models.SessionSignedIn,
		UserID: identity.ID,
		Time:   now,
	})

	return models.AuthSession{
		Identity:  identity,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// SignOut ends the session of the token. Signing out with an expired
// token succeeds.
func (r *Repository) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return models.ErrSessionMissing
	}

	sessionID, userID, err := parseToken(r.secret, token, r.Now())
	if errors.Is(err, errTokenExpired) {
		return nil
	} else if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&models.Session{}, sessionID)
	if result.Error != nil {
		return result.Error
	}

	// The session was already ended before
	if result.RowsAffected == 0 {
		return nil
	}

	r.broker.Publish(models.SessionEvent{
		Type:   models.SessionSignedOut,
		UserID: userID,
		Time:   r.Now().UTC(),
	})

	return nil
}

// CurrentUser returns the identity of the session for the token.
func (r *Repository) CurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, nil
	}

	now := r.Now()
	sessionID, userID, err := parseToken(r.secret, token, now)
	if errors.Is(err, errTokenExpired) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var session models.Session
	err = r.db.WithContext(ctx).First(&session, sessionID).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if session.IdentityID != userID {
		return nil, models.ErrTokenInvalid
	}

	if !session.ExpiresAt.After(now) {
		return nil, nil
	}

	var identity models.Identity
	err = r.db.WithContext(ctx).First(&identity, userID).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return &identity, nil
}

// Subscribe returns a stream of session events.
func (r *Repository) Subscribe() (<-chan models.SessionEvent, func()) {
	return r.broker.Subscribe()
}
