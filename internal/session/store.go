package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	apperrors "github.com/studybuddy/backend/internal/pkg/errors"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:      uuid.NewString(),
		answers: make(map[int]string),
		Ctime:   now,
		Atime:   now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if s.ttl > 0 && s.now().Sub(sess.Atime) > s.ttl {
		delete(s.sessions, id)
		return nil, apperrors.ErrNotFound
	}
	sess.Atime = s.now()
	return sess, nil
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep drops sessions idle past the TTL and returns how many were removed.
func (s *Store) Sweep(ctx context.Context) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.Atime.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()
	if removed > 0 {
		logutil.GetLogger(ctx).Info("expired sessions removed", zap.Int("count", removed))
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
