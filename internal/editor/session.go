package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"roamcms/internal/models"
	"roamcms/internal/utils"
)

// Session binds one draft to its block editor for the duration of a
// create/edit screen. The mutex serializes every operation against the
// draft: the UI never runs two at once, but HTTP delivery can.
type Session struct {
	ID        string
	Draft     *models.Draft
	Editor    *Editor
	CreatedAt time.Time
	touched   time.Time

	mu sync.Mutex
}

// Do runs fn with exclusive access to the session's draft and editor.
func (s *Session) Do(fn func(d *models.Draft, e *Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
	return fn(s.Draft, s.Editor)
}

// Store keeps live editing sessions in memory, keyed by uuid. Nothing
// here survives a restart: abandoned drafts are meant to be discarded.
type Store struct {
	sessions sync.Map
}

func NewStore() *Store {
	return &Store{}
}

// Create opens a session around the given draft and wires the editor's
// change hook to excerpt recomputation.
func (s *Store) Create(draft *models.Draft) *Session {
	sess := &Session{
		ID:        uuid.New().String(),
		Draft:     draft,
		CreatedAt: time.Now(),
		touched:   time.Now(),
	}
	sess.Editor = New(&draft.Content, draft.AllowedKinds(), func() {
		draft.Excerpt = utils.ExcerptFromBlocks(draft.Content)
	})
	s.sessions.Store(sess.ID, sess)
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	if v, ok := s.sessions.Load(id); ok {
		return v.(*Session), nil
	}
	return nil, fmt.Errorf("编辑会话不存在或已过期: %s", id)
}

func (s *Store) Delete(id string) {
	s.sessions.Delete(id)
}

// Sweep drops sessions idle longer than maxIdle and returns how many
// were removed. Called from the background scheduler.
func (s *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	s.sessions.Range(func(key, value any) bool {
		sess := value.(*Session)
		sess.mu.Lock()
		idle := sess.touched.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
