package service

import (
	"context"
	"time"

	"marketgate/api/internal/models"
	"marketgate/api/internal/repository"
)

type stubConsumerStore struct {
	byUsername map[string]models.Consumer
	byID       map[int64]models.Consumer
	err        error
	calls      int
}

func newStubConsumerStore() *stubConsumerStore {
	return &stubConsumerStore{
		byUsername: make(map[string]models.Consumer),
		byID:       make(map[int64]models.Consumer),
	}
}

func (s *stubConsumerStore) add(c models.Consumer) {
	s.byUsername[c.Username] = c
	s.byID[c.ID] = c
}

func (s *stubConsumerStore) FindByUsername(_ context.Context, username string) (models.Consumer, error) {
	s.calls++
	if s.err != nil {
		return models.Consumer{}, s.err
	}
	c, ok := s.byUsername[username]
	if !ok {
		return models.Consumer{}, repository.ErrConsumerNotFound
	}
	return c, nil
}

func (s *stubConsumerStore) GetByID(_ context.Context, id int64) (models.Consumer, error) {
	s.calls++
	if s.err != nil {
		return models.Consumer{}, s.err
	}
	c, ok := s.byID[id]
	if !ok {
		return models.Consumer{}, repository.ErrConsumerNotFound
	}
	return c, nil
}

type stubRetailerStore struct {
	byUsername map[string]models.Retailer
	byID       map[int64]models.Retailer
}

func newStubRetailerStore() *stubRetailerStore {
	return &stubRetailerStore{
		byUsername: make(map[string]models.Retailer),
		byID:       make(map[int64]models.Retailer),
	}
}

func (s *stubRetailerStore) add(r models.Retailer) {
	s.byUsername[r.Username] = r
	s.byID[r.ID] = r
}

func (s *stubRetailerStore) FindByUsername(_ context.Context, username string) (models.Retailer, error) {
	r, ok := s.byUsername[username]
	if !ok {
		return models.Retailer{}, repository.ErrRetailerNotFound
	}
	return r, nil
}

func (s *stubRetailerStore) GetByID(_ context.Context, id int64) (models.Retailer, error) {
	r, ok := s.byID[id]
	if !ok {
		return models.Retailer{}, repository.ErrRetailerNotFound
	}
	return r, nil
}

type stubAdminStore struct {
	byUsername map[string]models.Admin
	byID       map[int64]models.Admin
}

func newStubAdminStore() *stubAdminStore {
	return &stubAdminStore{
		byUsername: make(map[string]models.Admin),
		byID:       make(map[int64]models.Admin),
	}
}

func (s *stubAdminStore) add(a models.Admin) {
	s.byUsername[a.Username] = a
	s.byID[a.ID] = a
}

func (s *stubAdminStore) FindByUsername(_ context.Context, username string) (models.Admin, error) {
	a, ok := s.byUsername[username]
	if !ok {
		return models.Admin{}, repository.ErrAdminNotFound
	}
	return a, nil
}

func (s *stubAdminStore) GetByID(_ context.Context, id int64) (models.Admin, error) {
	a, ok := s.byID[id]
	if !ok {
		return models.Admin{}, repository.ErrAdminNotFound
	}
	return a, nil
}

// fakeIdentityCache records entries and the TTLs they were stored
// with, so tests can check the expiry cap and revoke purge.
type fakeIdentityCache struct {
	entries map[string]models.Identity
	ttls    map[string]time.Duration
	gets    int
	hits    int
	dels    int
}

func newFakeIdentityCache() *fakeIdentityCache {
	return &fakeIdentityCache{
		entries: make(map[string]models.Identity),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeIdentityCache) Get(_ context.Context, token string) (models.Identity, bool) {
	f.gets++
	identity, ok := f.entries[token]
	if ok {
		f.hits++
	}
	return identity, ok
}

func (f *fakeIdentityCache) Set(_ context.Context, token string, identity models.Identity, ttl time.Duration) {
	f.entries[token] = identity
	f.ttls[token] = ttl
}

func (f *fakeIdentityCache) Del(_ context.Context, token string) {
	f.dels++
	delete(f.entries, token)
	delete(f.ttls, token)
}

// stubSessionStore mimics the SQL store's read-time expiry filter: an
// expired row is still present but never returned live.
type stubSessionStore struct {
	sessions  map[string]models.Session
	createErr error
	calls     int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]models.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, session models.Session) error {
	s.calls++
	if s.createErr != nil {
		return s.createErr
	}
	s.sessions[session.Token] = session
	return nil
}

func (s *stubSessionStore) GetLive(_ context.Context, token string) (models.Session, error) {
	s.calls++
	session, ok := s.sessions[token]
	if !ok || !session.Live(time.Now()) {
		return models.Session{}, repository.ErrSessionNotFound
	}
	return session, nil
}

func (s *stubSessionStore) DeleteByToken(_ context.Context, token string) error {
	s.calls++
	delete(s.sessions, token)
	return nil
}
