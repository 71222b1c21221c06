package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"marketgate/api/internal/config"
	"marketgate/api/internal/ids"
	"marketgate/api/internal/models"
	"marketgate/api/internal/repository"
	"marketgate/api/internal/security"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionCreation    = errors.New("session creation failed")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// ConsumerStore is the slice of consumer persistence the services need.
type ConsumerStore interface {
	FindByUsername(ctx context.Context, username string) (models.Consumer, error)
	GetByID(ctx context.Context, id int64) (models.Consumer, error)
}

type RetailerStore interface {
	FindByUsername(ctx context.Context, username string) (models.Retailer, error)
	GetByID(ctx context.Context, id int64) (models.Retailer, error)
}

type AdminStore interface {
	FindByUsername(ctx context.Context, username string) (models.Admin, error)
	GetByID(ctx context.Context, id int64) (models.Admin, error)
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetLive(ctx context.Context, token string) (models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// AuthService owns the login and logout flows for all three identity
// categories.
type AuthService struct {
	consumers ConsumerStore
	retailers RetailerStore
	admins    AdminStore
	sessions  SessionStore
	cache     IdentityCache
	cfg       *config.AppConfig
	log       zerolog.Logger
}

func NewAuthService(
	consumers ConsumerStore,
	retailers RetailerStore,
	admins AdminStore,
	sessions SessionStore,
	cache IdentityCache,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		consumers: consumers,
		retailers: retailers,
		admins:    admins,
		sessions:  sessions,
		cache:     cache,
		cfg:       cfg,
		log:       log,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User    models.Identity
	Session models.Session
}

// Login verifies credentials against the given category's storage and,
// on success, issues a fresh session. Unknown username and wrong
// password collapse into the same ErrInvalidCredentials so responses
// cannot be used to enumerate accounts. The stored password hash never
// leaves this method.
func (s *AuthService) Login(ctx context.Context, category models.Category, input LoginInput) (LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	userID, passwordHash, identity, err := s.lookupCredentials(ctx, category, username)
	if err != nil {
		return LoginResult{}, err
	}

	if !security.VerifyPassword(password, passwordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := security.NewSessionToken()
	if err != nil {
		s.log.Error().Err(err).Msg("session token generation failed")
		return LoginResult{}, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	now := time.Now().UTC()
	session := models.Session{
		ID:        ids.New(),
		Token:     token,
		UserID:    userID,
		Category:  category,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Security.SessionTTL),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		s.log.Error().Err(err).Str("category", string(category)).Msg("session insert failed")
		return LoginResult{}, fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	s.log.Info().
		Str("category", string(category)).
		Int64("user_id", userID).
		Time("expires_at", session.ExpiresAt).
		Msg("login succeeded")

	return LoginResult{User: identity, Session: session}, nil
}

// Logout revokes the session behind the token. Revoking a token that
// was never issued, or was already revoked, succeeds quietly.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		s.log.Error().Err(err).Msg("session delete failed")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if s.cache != nil {
		s.cache.Del(ctx, token)
	}
	return nil
}

func (s *AuthService) lookupCredentials(ctx context.Context, category models.Category, username string) (int64, string, models.Identity, error) {
	switch category {
	case models.CategoryConsumer:
		c, err := s.consumers.FindByUsername(ctx, username)
		if err != nil {
			return 0, "", models.Identity{}, s.credentialError(err, repository.ErrConsumerNotFound)
		}
		return c.ID, c.PasswordHash, c.Normalized(), nil
	case models.CategoryRetailer:
		r, err := s.retailers.FindByUsername(ctx, username)
		if err != nil {
			return 0, "", models.Identity{}, s.credentialError(err, repository.ErrRetailerNotFound)
		}
		return r.ID, r.PasswordHash, r.Normalized(), nil
	case models.CategoryAdmin:
		a, err := s.admins.FindByUsername(ctx, username)
		if err != nil {
			return 0, "", models.Identity{}, s.credentialError(err, repository.ErrAdminNotFound)
		}
		return a.ID, a.PasswordHash, a.Normalized(), nil
	default:
		return 0, "", models.Identity{}, ErrInvalidCredentials
	}
}

// credentialError keeps "no such user" indistinguishable from a wrong
// password while still surfacing infrastructure failures distinctly.
func (s *AuthService) credentialError(err error, notFound error) error {
	if errors.Is(err, notFound) {
		return ErrInvalidCredentials
	}
	s.log.Error().Err(err).Msg("credential lookup failed")
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
