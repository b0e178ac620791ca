// Package sessions keeps live wizard sessions in process memory with an idle TTL.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found or expired")

// Closer releases whatever a session owns, such as pending timers.
type Closer interface {
	Close()
}

type entry[S Closer] struct {
	session   S
	expiresAt time.Time
}

// Registry maps session ids to sessions. Every successful Get extends the TTL.
type Registry[S Closer] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry[S]
}

func NewRegistry[S Closer](ttl time.Duration, now func() time.Time) *Registry[S] {
	if now == nil {
		now = time.Now
	}
	return &Registry[S]{ttl: ttl, now: now, entries: make(map[string]*entry[S])}
}

// Add stores s under a new time-ordered id.
func (r *Registry[S]) Add(s S) (string, time.Time, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate session id: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp := r.now().Add(r.ttl)
	r.entries[id.String()] = &entry[S]{session: s, expiresAt: exp}
	return id.String(), exp, nil
}

// Get returns the session and its new expiry. Expired sessions are closed and dropped.
func (r *Registry[S]) Get(id string) (S, time.Time, error) {
	var zero S
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		return zero, time.Time{}, ErrNotFound
	}
	now := r.now()
	if !now.Before(e.expiresAt) {
		delete(r.entries, id)
		r.mu.Unlock()
		e.session.Close()
		return zero, time.Time{}, ErrNotFound
	}
	e.expiresAt = now.Add(r.ttl)
	exp := e.expiresAt
	r.mu.Unlock()
	return e.session, exp, nil
}

// Remove closes and drops the session. It reports whether it existed.
func (r *Registry[S]) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		e.session.Close()
	}
	return ok
}

// Sweep closes every expired session and returns how many were dropped.
func (r *Registry[S]) Sweep() int {
	r.mu.Lock()
	now := r.now()
	var expired []S
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			expired = append(expired, e.session)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()
	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

func (r *Registry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CloseAll closes and drops every session.
func (r *Registry[S]) CloseAll() {
	r.mu.Lock()
	all := make([]S, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e.session)
	}
	r.entries = make(map[string]*entry[S])
	r.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}

// RunJanitor sweeps every interval until ctx is done.
func (r *Registry[S]) RunJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
