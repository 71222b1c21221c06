package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"marketgate/api/internal/models"
)

func TestIdentityService_Resolve_CacheEntryNeverOutlivesSession(t *testing.T) {
	consumers := newStubConsumerStore()
	consumers.add(models.Consumer{ID: 1, Username: "alice", CreatedAt: time.Now()})
	sessions := newStubSessionStore()
	cache := newFakeIdentityCache()
	svc := NewIdentityService(consumers, newStubRetailerStore(), newStubAdminStore(), sessions, cache, 5*time.Minute, zerolog.Nop())

	// Session outlives the cache window: the configured TTL wins.
	longToken := "a" + testToken[1:]
	seedSession(sessions, longToken, 1, models.CategoryConsumer, time.Now().Add(48*time.Hour))
	if _, err := svc.Resolve(context.Background(), longToken); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got := cache.ttls[longToken]; got != 5*time.Minute {
		t.Fatalf("long session cached with ttl %v, want 5m", got)
	}

	// Session expires before the cache window closes: the entry's TTL
	// must shrink to the session's remaining lifetime.
	shortToken := "b" + testToken[1:]
	seedSession(sessions, shortToken, 1, models.CategoryConsumer, time.Now().Add(90*time.Second))
	if _, err := svc.Resolve(context.Background(), shortToken); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	got := cache.ttls[shortToken]
	if got <= 0 || got > 90*time.Second {
		t.Fatalf("near-expiry session cached with ttl %v, want within (0, 90s]", got)
	}
}

func TestIdentityService_Resolve_CacheHitSkipsStores(t *testing.T) {
	sessions := newStubSessionStore()
	cache := newFakeIdentityCache()
	cache.entries[testToken] = models.Identity{ID: 1, Username: "alice", Role: "consumer", Category: models.CategoryConsumer}
	svc := NewIdentityService(newStubConsumerStore(), newStubRetailerStore(), newStubAdminStore(), sessions, cache, 5*time.Minute, zerolog.Nop())

	identity, err := svc.Resolve(context.Background(), testToken)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if identity.Username != "alice" {
		t.Fatalf("unexpected identity from cache: %+v", identity)
	}
	if cache.hits != 1 {
		t.Fatalf("cache hits = %d, want 1", cache.hits)
	}
	if sessions.calls != 0 {
		t.Fatalf("cache hit still touched the session store %d times", sessions.calls)
	}
}

func TestAuthService_Logout_PurgesIdentityCache(t *testing.T) {
	consumers := newStubConsumerStore()
	seedConsumer(t, consumers, "alice", "correct")
	sessions := newStubSessionStore()
	cache := newFakeIdentityCache()
	auth := NewAuthService(consumers, newStubRetailerStore(), newStubAdminStore(), sessions, cache, testConfig(), zerolog.Nop())
	identity := NewIdentityService(consumers, newStubRetailerStore(), newStubAdminStore(), sessions, cache, 5*time.Minute, zerolog.Nop())

	result, err := auth.Login(context.Background(), models.CategoryConsumer, LoginInput{Username: "alice", Password: "correct"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	token := result.Session.Token

	if _, err := identity.Resolve(context.Background(), token); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, ok := cache.entries[token]; !ok {
		t.Fatal("resolve did not populate the cache")
	}

	if err := auth.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := cache.entries[token]; ok {
		t.Fatal("logout left a cached identity behind")
	}
	if _, err := identity.Resolve(context.Background(), token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("revoked session resolved through the cache, got %v", err)
	}
}

func TestRedisIdentityCache_DegradesToStoreOnFailure(t *testing.T) {
	// An unreachable redis must never break resolution, only slow it.
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })
	cache := NewRedisIdentityCache(client, zerolog.Nop())

	consumers := newStubConsumerStore()
	consumers.add(models.Consumer{ID: 1, Username: "alice", CreatedAt: time.Now()})
	sessions := newStubSessionStore()
	seedSession(sessions, testToken, 1, models.CategoryConsumer, time.Now().Add(time.Hour))
	svc := NewIdentityService(consumers, newStubRetailerStore(), newStubAdminStore(), sessions, cache, 5*time.Minute, zerolog.Nop())

	identity, err := svc.Resolve(context.Background(), testToken)
	if err != nil {
		t.Fatalf("resolve should fall back to the store: %v", err)
	}
	if identity.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	// The best-effort operations swallow the failure too.
	cache.Set(context.Background(), testToken, identity, time.Minute)
	cache.Del(context.Background(), testToken)
	if _, ok := cache.Get(context.Background(), testToken); ok {
		t.Fatal("unreachable redis reported a cache hit")
	}
}

func TestRedisIdentityCache_NilClientIsNoop(t *testing.T) {
	cache := NewRedisIdentityCache(nil, zerolog.Nop())

	cache.Set(context.Background(), testToken, models.Identity{ID: 1}, time.Minute)
	if _, ok := cache.Get(context.Background(), testToken); ok {
		t.Fatal("nil-client cache reported a hit")
	}
	cache.Del(context.Background(), testToken)
}
