package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jdginn/go-mirror-room/room"
)

// Session is an open room. Its mutex serialises every request touching the
// room.
type Session struct {
	mu   sync.Mutex
	ID   string
	Room *room.Room
}

// SessionManager keeps open rooms in memory and falls back to the store for
// ids it has not seen since start.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    *Store
	params   room.TraceParams
}

func NewSessionManager(store *Store, params room.TraceParams) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		store:    store,
		params:   params,
	}
}

// Create opens a session for r under a fresh id and stores it.
func (m *SessionManager) Create(ctx context.Context, r *room.Room) (*Session, error) {
	r.SetTraceParams(m.params)
	s := &Session{ID: uuid.NewString(), Room: r}
	if err := m.store.Save(ctx, s.ID, r.ToJSON()); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return s, nil
}

// Get returns the open session for id, reopening it from the store if
// needed.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	doc, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := room.FromRoomJSON(doc)
	if err != nil {
		return nil, err
	}
	r.SetTraceParams(m.params)

	s := &Session{ID: id, Room: r}
	m.sessions[id] = s
	return s, nil
}

// Update runs fn on the session's room under its lock and stores the room
// when fn succeeds. If the store rejects the result the room goes back to
// what it was before fn.
func (m *SessionManager) Update(ctx context.Context, id string, fn func(r *room.Room) error) (room.RoomJSON, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return room.RoomJSON{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.Room.ToJSON()
	if err := fn(s.Room); err != nil {
		return room.RoomJSON{}, err
	}
	doc := s.Room.ToJSON()
	if err := m.store.Save(ctx, id, doc); err != nil {
		m.restore(s, before)
		return room.RoomJSON{}, err
	}
	return doc, nil
}

// restore rebuilds the session's room from doc. When that fails the session
// is dropped so the next request reopens it from the store.
func (m *SessionManager) restore(s *Session, doc room.RoomJSON) {
	r, err := room.FromRoomJSON(doc)
	if err != nil {
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		return
	}
	r.SetTraceParams(m.params)
	s.Room = r
}

// View runs fn on the session's room under its lock.
func (m *SessionManager) View(ctx context.Context, id string, fn func(r *room.Room) error) error {
	s, err := m.Get(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Room)
}

// Remove forgets the session and deletes it from the store.
func (m *SessionManager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return m.store.Delete(ctx, id)
}
