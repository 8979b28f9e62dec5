package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrHubFull = errors.New("game: session limit reached")

// Hub owns the live sessions.
type Hub struct {
	Content  *Content
	Sessions map[string]*Session
	TTL      time.Duration
	Mu       sync.Mutex
}

func NewHub(content *Content, ttl time.Duration) *Hub {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Hub{
		Content:  content,
		Sessions: map[string]*Session{},
		TTL:      ttl,
	}
}

// GetSession returns the session with id, creating it when missing. An
// empty id gets a fresh uuid.
func (h *Hub) GetSession(id string) (*Session, error) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	if id != "" {
		if s, ok := h.Sessions[id]; ok {
			return s, nil
		}
	} else {
		id = uuid.NewString()
	}
	if len(h.Sessions) >= MaxSessionsPerHub {
		return nil, ErrHubFull
	}
	s := NewSession(id, h.Content)
	h.Sessions[id] = s
	return s, nil
}

// Lookup returns an existing session or nil.
func (h *Hub) Lookup(id string) *Session {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return h.Sessions[id]
}

// CleanupIdle drops sessions with no attached connection that were not seen
// since now-TTL and returns how many were removed.
func (h *Hub) CleanupIdle(now time.Time) int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	removed := 0
	for id, s := range h.Sessions {
		s.Mu.Lock()
		idle, attached := now.Sub(s.LastSeen), s.conns > 0
		s.Mu.Unlock()
		if idle > h.TTL && !attached {
			delete(h.Sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[hub] dropped %d idle sessions (%d left)", removed, len(h.Sessions))
	}
	return removed
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	return len(h.Sessions)
}
