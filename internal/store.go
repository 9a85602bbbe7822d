package internal

import (
	"fmt"
	"strings"
	"sync"
)

// SessionStore owns every session and message and the active session pointer.
// Each mutation writes a full snapshot through the Persister and then notifies
// change listeners. The store is never empty.
type SessionStore struct {
	mu        sync.RWMutex
	order     []string
	sessions  map[string]*Session
	active    string
	persister Persister
	newID     func() string

	listenersMu sync.Mutex
	listeners   []func()
}

// NewSessionStore creates a store holding one empty default session.
// persister may be nil.
func NewSessionStore(persister Persister) *SessionStore {
	s := &SessionStore{
		sessions:  make(map[string]*Session),
		persister: persister,
		newID:     NewSessionID,
	}
	s.insert(Session{ID: DefaultSessionID, Messages: []Message{}})
	s.active = DefaultSessionID
	return s
}

// RestoreSessionStore loads the persisted session set, falling back to a
// single default session. Message ids seen in the snapshot are fed to ids so
// new messages always sort after them.
func RestoreSessionStore(p *Persistence, ids *IDGenerator) *SessionStore {
	sessions, ok := p.Load()
	if !ok || len(sessions) == 0 {
		LogDebug("No persisted sessions, starting with %q", DefaultSessionID)
		return NewSessionStore(p)
	}

	s := &SessionStore{
		sessions:  make(map[string]*Session),
		persister: p,
		newID:     NewSessionID,
	}
	for _, session := range sessions {
		if _, dup := s.sessions[session.ID]; dup {
			continue
		}
		for _, msg := range session.Messages {
			ids.Observe(msg.ID)
		}
		s.insert(session)
	}

	items := ListSessions(s.snapshotLocked(), "")
	s.active = items[0].ID
	LogDebug("Restored %d session(s), active %s", len(s.order), s.active)
	return s
}

// OnChange registers fn to run after every change to the store
func (s *SessionStore) OnChange(fn func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// CreateSession inserts an empty session and returns its id. The active
// pointer is left alone.
func (s *SessionStore) CreateSession() string {
	s.mu.Lock()
	id := s.newID()
	for s.sessions[id] != nil {
		id = s.newID()
	}
	s.insert(Session{ID: id, Messages: []Message{}})
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return id
}

// DeleteSession removes a session and returns the first remaining id. When
// the last session is removed a fresh one takes its place. If the active
// session was removed, the active pointer moves to the returned id.
func (s *SessionStore) DeleteSession(id string) (string, error) {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return "", fmt.Errorf("delete %s: %w", id, ErrUnknownSession)
	}

	delete(s.sessions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.order) == 0 {
		s.insert(Session{ID: s.newID(), Messages: []Message{}})
	}
	fallback := s.order[0]
	if s.active == id {
		s.active = fallback
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return fallback, nil
}

// RenameSession sets the display name. Blank names and unknown ids are
// ignored; the return value reports whether anything changed.
func (s *SessionStore) RenameSession(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		LogDebug("Rename of unknown session %s ignored", id)
		return false
	}
	session.Name = name
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// AppendMessage appends msg to the session's history
func (s *SessionStore) AppendMessage(id string, msg Message) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("append to %s: %w", id, ErrUnknownSession)
	}
	session.Messages = append(session.Messages, msg.Clone())
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Messages returns a copy of the session's history, empty for unknown ids
func (s *SessionStore) Messages(id string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return []Message{}
	}
	return session.Clone().Messages
}

// Session returns a copy of one session
func (s *SessionStore) Session(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return session.Clone(), true
}

// HasSession reports whether id exists
func (s *SessionStore) HasSession(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// Sessions returns copies of all sessions in insertion order
func (s *SessionStore) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ActiveSessionID returns the currently displayed session
func (s *SessionStore) ActiveSessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SelectSession moves the active pointer. Selection is not persisted.
func (s *SessionStore) SelectSession(id string) error {
	s.mu.Lock()
	if _, ok := s.sessions[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("select %s: %w", id, ErrUnknownSession)
	}
	changed := s.active != id
	s.active = id
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

func (s *SessionStore) insert(session Session) {
	copied := session.Clone()
	s.sessions[session.ID] = &copied
	s.order = append(s.order, session.ID)
}

func (s *SessionStore) snapshotLocked() []Session {
	out := make([]Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

// persistLocked writes the snapshot while the write lock is held so snapshots
// land in mutation order. Failures are logged, never returned.
func (s *SessionStore) persistLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.snapshotLocked()); err != nil {
		LogWarn("Failed to persist sessions: %v", err)
	}
}

func (s *SessionStore) notify() {
	s.listenersMu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
