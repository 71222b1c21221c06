package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"marketgate/api/internal/models"
	"marketgate/api/internal/repository"
)

// ErrSessionInvalid covers every way a token can fail to resolve:
// never issued, expired, revoked, or pointing at a deleted account.
// Callers get one outcome for all of them.
var ErrSessionInvalid = errors.New("session not found or expired")

// IdentityService resolves a session token into the normalized
// identity of its owner, dispatching on the session's category tag.
type IdentityService struct {
	consumers ConsumerStore
	retailers RetailerStore
	admins    AdminStore
	sessions  SessionStore
	cache     IdentityCache
	cacheTTL  time.Duration
	log       zerolog.Logger
}

func NewIdentityService(
	consumers ConsumerStore,
	retailers RetailerStore,
	admins AdminStore,
	sessions SessionStore,
	cache IdentityCache,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *IdentityService {
	return &IdentityService{
		consumers: consumers,
		retailers: retailers,
		admins:    admins,
		sessions:  sessions,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// Resolve validates the session and fetches the owning record from its
// category's storage. Expiry is enforced by the session read itself;
// there is no separate liveness flag to consult.
func (s *IdentityService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ErrSessionInvalid
	}

	if s.cache != nil {
		if identity, ok := s.cache.Get(ctx, token); ok {
			return identity, nil
		}
	}

	session, err := s.sessions.GetLive(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return models.Identity{}, ErrSessionInvalid
		}
		s.log.Error().Err(err).Msg("session lookup failed")
		return models.Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	identity, err := s.ownerIdentity(ctx, session)
	if err != nil {
		return models.Identity{}, err
	}

	s.cacheIdentity(ctx, token, identity, session.ExpiresAt)
	return identity, nil
}

// cacheIdentity caps the entry's TTL at the session's own remaining
// lifetime, so a cached identity can never outlive its session.
func (s *IdentityService) cacheIdentity(ctx context.Context, token string, identity models.Identity, expiresAt time.Time) {
	if s.cache == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if s.cacheTTL > 0 && s.cacheTTL < ttl {
		ttl = s.cacheTTL
	}
	if ttl <= 0 {
		return
	}
	s.cache.Set(ctx, token, identity, ttl)
}

func (s *IdentityService) ownerIdentity(ctx context.Context, session models.Session) (models.Identity, error) {
	switch session.Category {
	case models.CategoryConsumer:
		c, err := s.consumers.GetByID(ctx, session.UserID)
		if err != nil {
			return models.Identity{}, s.ownerError(session, err, repository.ErrConsumerNotFound)
		}
		return c.Normalized(), nil
	case models.CategoryRetailer:
		r, err := s.retailers.GetByID(ctx, session.UserID)
		if err != nil {
			return models.Identity{}, s.ownerError(session, err, repository.ErrRetailerNotFound)
		}
		return r.Normalized(), nil
	case models.CategoryAdmin:
		a, err := s.admins.GetByID(ctx, session.UserID)
		if err != nil {
			return models.Identity{}, s.ownerError(session, err, repository.ErrAdminNotFound)
		}
		return a.Normalized(), nil
	default:
		s.log.Warn().Str("category", string(session.Category)).Msg("session carries unknown category")
		return models.Identity{}, ErrSessionInvalid
	}
}

// ownerError treats a deleted owning record the same as an invalid
// session toward the caller, while logging the real cause so operators
// can tell the two apart.
func (s *IdentityService) ownerError(session models.Session, err error, notFound error) error {
	if errors.Is(err, notFound) {
		s.log.Warn().
			Str("category", string(session.Category)).
			Int64("user_id", session.UserID).
			Msg("live session references missing identity")
		return ErrSessionInvalid
	}
	s.log.Error().Err(err).Msg("identity lookup failed")
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
