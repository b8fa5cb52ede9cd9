// Package session owns the client's authentication state: whether the
// current user is logged in and who they are. The state survives restarts
// through a durable key-value store and is the single gate for every
// protected dashboard view.
package session

import (
	"encoding/json"
	"sync"

	"github.com/mollysec/molly/internal/debug"
)

const (
	authenticatedKey = "authenticated"
	identityKey      = "user"

	// The persisted flag must be exactly this literal to count as a
	// restored login; anything else degrades to unauthenticated.
	authenticatedLiteral = "true"
)

var log = debug.GetLogger()

// KV is the durable store the session persists through.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Identity describes the logged-in user.
type Identity struct {
	Username string `json:"username"`
}

// Snapshot is an immutable view of the session handed to subscribers.
// Identity is non-nil exactly when Authenticated is true.
type Snapshot struct {
	Authenticated bool
	Identity      *Identity
}

// Store is the single source of truth for the session. It is constructed
// explicitly and passed to consumers; mutations happen only through Login
// and Logout.
type Store struct {
	mu            sync.Mutex
	kv            KV
	authenticated bool
	identity      *Identity

	subscribers      map[int]func(Snapshot)
	nextSubscriberID int
}

// New builds a store, restoring any persisted session. Missing or
// malformed persisted values degrade to an unauthenticated session; this
// never fails.
func New(kv KV) *Store {
	s := &Store{
		kv:          kv,
		subscribers: map[int]func(Snapshot){},
	}
	s.load()
	return s
}

func (s *Store) load() {
	flag, ok, err := s.kv.Get(authenticatedKey)
	if err != nil {
		log.Warn("reading persisted session flag", "error", err)
		return
	}
	if !ok || flag != authenticatedLiteral {
		return
	}

	raw, ok, err := s.kv.Get(identityKey)
	if err != nil {
		log.Warn("reading persisted identity", "error", err)
		return
	}
	if !ok {
		return
	}
	identity := &Identity{}
	if err := json.Unmarshal([]byte(raw), identity); err != nil || identity.Username == "" {
		// A flag without a valid identity would break the
		// identity-iff-authenticated invariant; treat the whole
		// session as unauthenticated.
		log.Warn("discarding malformed persisted identity", "raw", raw)
		return
	}

	s.authenticated = true
	s.identity = identity
}

// Authenticated reports whether a login has occurred with no logout since.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Identity returns the logged-in identity, if any.
func (s *Store) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snapshot := Snapshot{Authenticated: s.authenticated}
	if s.identity != nil {
		identity := *s.identity
		snapshot.Identity = &identity
	}
	return snapshot
}

// Login marks the session authenticated as the given user and persists it.
// Credentials must already have been verified against the backend; no
// network call happens here. Logging in over an existing session
// overwrites it.
func (s *Store) Login(username string) {
	s.mu.Lock()
	s.authenticated = true
	s.identity = &Identity{Username: username}

	// Write-through is best-effort: the in-memory session stands even if
	// the durable write fails.
	if err := s.kv.Set(authenticatedKey, authenticatedLiteral); err != nil {
		log.Warn("persisting session flag", "error", err)
	}
	raw, err := json.Marshal(s.identity)
	if err == nil {
		err = s.kv.Set(identityKey, string(raw))
	}
	if err != nil {
		log.Warn("persisting identity", "error", err)
	}

	snapshot := s.snapshotLocked()
	subscribers := s.subscribersLocked()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// Logout clears the session and removes the persisted values. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.identity = nil

	if err := s.kv.Delete(authenticatedKey); err != nil {
		log.Warn("removing persisted session flag", "error", err)
	}
	if err := s.kv.Delete(identityKey); err != nil {
		log.Warn("removing persisted identity", "error", err)
	}

	snapshot := s.snapshotLocked()
	subscribers := s.subscribersLocked()
	s.mu.Unlock()

	notify(subscribers, snapshot)
}

// Subscribe registers a callback invoked synchronously on every mutation.
// It returns an unsubscribe function.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubscriberID
	s.nextSubscriberID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) subscribersLocked() []func(Snapshot) {
	subscribers := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	return subscribers
}

// notify runs outside the store lock so callbacks may read the store.
func notify(subscribers []func(Snapshot), snapshot Snapshot) {
	for _, fn := range subscribers {
		fn(snapshot)
	}
}
