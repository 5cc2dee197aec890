package server

import (
	"sync"

	"github.com/etnz/shopsight"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "shopsight_session"

// session is the per-browser state: its own dataset (initially the
// server's base book, replaced on upload) and the active filter.
type session struct {
	mu      sync.RWMutex
	dataset *shopsight.Dataset
	filter  shopsight.Filter
}

func (s *session) view() *shopsight.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Select(s.filter)
}

func (s *session) setFilter(f shopsight.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *session) getFilter() shopsight.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *session) setDataset(ds *shopsight.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
}

func (s *session) getDataset() *shopsight.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// sessionStore hands out cookie-keyed sessions. Unknown or absent
// cookies get a fresh session seeded with the base dataset.
type sessionStore struct {
	mu   sync.RWMutex
	base *shopsight.Dataset
	byID map[string]*session
}

func newSessionStore(base *shopsight.Dataset) *sessionStore {
	return &sessionStore{base: base, byID: make(map[string]*session)}
}

// session returns the caller's session, creating it and setting the
// cookie when needed.
func (st *sessionStore) session(c *gin.Context) *session {
	if id, err := c.Cookie(sessionCookie); err == nil {
		st.mu.RLock()
		s, ok := st.byID[id]
		st.mu.RUnlock()
		if ok {
			return s
		}
	}

	id := uuid.NewString()
	s := &session{dataset: st.base}
	st.mu.Lock()
	st.byID[id] = s
	st.mu.Unlock()

	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return s
}
