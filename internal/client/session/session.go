// Package session is the single source of truth for "is the user signed in"
// and for the bearer credential sent on every request. The durable copy lives
// in one JSON file (the "user" key); the in-memory copy is a replica kept in
// sync by write-through and by the external-change watcher.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/julzedz/pbs-frontend/internal/shared/models"
)

const userKeyFile = "user.json"

// Store holds the current session and the set of locally tombstoned property
// ids. All mutations go through its methods.
type Store struct {
	path string

	mu      sync.Mutex
	current *models.Session
	deleted map[string]struct{}
	subs    map[int]func(*models.Session)
	nextSub int
	lastMod time.Time
}

// NewStore hydrates a store from stateDir. A missing or unparseable user file
// degrades silently to the signed-out state.
func NewStore(stateDir string) *Store {
	s := &Store{
		path:    filepath.Join(stateDir, userKeyFile),
		deleted: make(map[string]struct{}),
		subs:    make(map[int]func(*models.Session)),
	}
	s.current = s.readDurable()
	s.lastMod = s.modTime()
	return s
}

// Path returns the location of the durable "user" key.
func (s *Store) Path() string { return s.path }

// Current returns a copy of the session, or nil when signed out.
func (s *Store) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Set installs a session, writing through to the durable store. A nil
// session clears the durable key.
func (s *Store) Set(sess *models.Session) error {
	s.mu.Lock()
	if sess == nil {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.mu.Unlock()
			return err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
			s.mu.Unlock()
			return err
		}
		b, err := json.Marshal(sess)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		if err := os.WriteFile(s.path, b, 0o600); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	if sess == nil {
		s.current = nil
	} else {
		c := *sess
		s.current = &c
	}
	s.lastMod = s.modTime()
	subs, cur := s.snapshotLocked()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(cur)
	}
	return nil
}

// Logout clears the durable key, the in-memory session, and the tombstone
// set. Safe to call repeatedly.
func (s *Store) Logout() {
	s.mu.Lock()
	_ = os.Remove(s.path)
	s.current = nil
	s.deleted = make(map[string]struct{})
	s.lastMod = s.modTime()
	subs, cur := s.snapshotLocked()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(cur)
	}
}

// MarkPropertyDeleted records a property id as deleted for the rest of this
// session. Idempotent; never persisted.
func (s *Store) MarkPropertyDeleted(id string) {
	s.mu.Lock()
	s.deleted[id] = struct{}{}
	s.mu.Unlock()
}

// IsPropertyDeleted reports whether the id has been tombstoned.
func (s *Store) IsPropertyDeleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.deleted[id]
	return ok
}

// Subscribe registers a listener invoked after every session change. The
// returned function removes it.
func (s *Store) Subscribe(fn func(*models.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Token reads the credential from the durable store at call time, not from
// the in-memory replica, so a sign-out performed by another process wins.
// Returns "" on any read or parse failure.
func (s *Store) Token() string {
	sess := s.readDurable()
	if sess == nil {
		return ""
	}
	return sess.Token
}

// TokenExpiry peeks at the stored credential's exp claim without verifying
// the signature. ok is false for a missing token or a non-JWT credential.
func (s *Store) TokenExpiry() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Watch polls the durable key for external mutations (another process
// signing in or out) and re-hydrates on change, publishing to subscribers.
// Blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.rehydrateIfChanged()
		}
	}
}

func (s *Store) rehydrateIfChanged() {
	mod := s.modTime()
	s.mu.Lock()
	if mod.Equal(s.lastMod) {
		s.mu.Unlock()
		return
	}
	s.lastMod = mod
	s.current = s.readDurable()
	subs, cur := s.snapshotLocked()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(cur)
	}
}

// snapshotLocked copies the subscriber list and current session so listeners
// run outside the lock.
func (s *Store) snapshotLocked() ([]func(*models.Session), *models.Session) {
	subs := make([]func(*models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	var cur *models.Session
	if s.current != nil {
		c := *s.current
		cur = &c
	}
	return subs, cur
}

func (s *Store) readDurable() *models.Session {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil
	}
	return &sess
}

func (s *Store) modTime() time.Time {
	info, err := os.Stat(s.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
