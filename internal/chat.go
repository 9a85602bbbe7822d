package internal

import "context"

// Chat is the surface the presentation layer works against
type Chat struct {
	store      *SessionStore
	controller *Controller
}

// NewChat wires a store to an answering service
func NewChat(store *SessionStore, answerer Answerer, ids *IDGenerator) *Chat {
	return &Chat{
		store:      store,
		controller: NewController(store, answerer, ids),
	}
}

// OpenChat restores persisted sessions from kv and wires them to answerer
func OpenChat(kv KVStore, answerer Answerer) *Chat {
	ids := NewIDGenerator()
	store := RestoreSessionStore(NewPersistence(kv), ids)
	return NewChat(store, answerer, ids)
}

// Store exposes the underlying session store
func (c *Chat) Store() *SessionStore {
	return c.store
}

// Controller exposes the message lifecycle controller
func (c *Chat) Controller() *Controller {
	return c.controller
}

func (c *Chat) CurrentSessionID() string {
	return c.store.ActiveSessionID()
}

// Messages returns the active session's history
func (c *Chat) Messages() []Message {
	return c.store.Messages(c.store.ActiveSessionID())
}

func (c *Chat) Processing() bool {
	return c.controller.Processing()
}

// Sessions returns the display ordering of all sessions
func (c *Chat) Sessions() []SessionListItem {
	return ListSessions(c.store.Sessions(), c.store.ActiveSessionID())
}

// Submit sends text in the active session
func (c *Chat) Submit(ctx context.Context, text string) (<-chan Outcome, error) {
	return c.controller.Submit(ctx, c.store.ActiveSessionID(), text)
}

// CreateSession creates a session and makes it active
func (c *Chat) CreateSession() string {
	id := c.store.CreateSession()
	_ = c.store.SelectSession(id)
	return id
}

// DeleteSession removes id; the active pointer falls back if it pointed there
func (c *Chat) DeleteSession(id string) error {
	_, err := c.store.DeleteSession(id)
	return err
}

func (c *Chat) SelectSession(id string) error {
	return c.store.SelectSession(id)
}

func (c *Chat) RenameSession(id, name string) bool {
	return c.store.RenameSession(id, name)
}
