package internal

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Phase is the controller's request state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingResponse
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingResponse:
		return "awaiting-response"
	default:
		return "idle"
	}
}

// State describes the request in flight, if any
type State struct {
	Phase            Phase
	SessionID        string
	PendingMessageID int64
}

// Outcome reports how a submission was reconciled
type Outcome struct {
	SessionID string
	Message   Message // the assistant message that was built
	Err       error   // transport failure, nil on success
	Dropped   bool    // the originating session was gone
}

// Controller runs one user turn at a time: it commits the user message,
// asks the answering service and appends the reply to the session the
// turn started in.
type Controller struct {
	store    *SessionStore
	answerer Answerer
	ids      *IDGenerator

	mu    sync.Mutex
	state State
	input string
}

// NewController creates a controller over store
func NewController(store *SessionStore, answerer Answerer, ids *IDGenerator) *Controller {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &Controller{store: store, answerer: answerer, ids: ids}
}

// State returns the current request state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Processing reports whether a request is in flight
func (c *Controller) Processing() bool {
	return c.State().Phase == PhaseAwaitingResponse
}

// Input returns the draft input buffer
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput replaces the draft input buffer
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Submit commits text as a user message in sessionID and starts the request.
// It returns ErrEmptyInput for blank text, ErrBusy while another request is
// in flight and ErrUnknownSession when the session does not exist; none of
// these change any state. On success the returned channel yields exactly one
// Outcome once the reply has been reconciled, then closes.
//
// The request is detached from ctx cancellation: once started it always runs
// to completion or failure.
func (c *Controller) Submit(ctx context.Context, sessionID, text string) (<-chan Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	// Claim the slot first; the store is called without c.mu held because its
	// change listeners may read controller state.
	c.mu.Lock()
	if c.state.Phase != PhaseIdle {
		pending := c.state.SessionID
		c.mu.Unlock()
		LogDebug("Submit to %s dropped: request for %s still pending", sessionID, pending)
		return nil, ErrBusy
	}
	c.state = State{Phase: PhaseAwaitingResponse, SessionID: sessionID}
	c.mu.Unlock()

	history := c.store.Messages(sessionID)
	userMsg := Message{
		ID:      c.ids.Next(),
		Role:    RoleUser,
		Content: text,
		Status:  StatusSent,
	}
	if err := c.store.AppendMessage(sessionID, userMsg); err != nil {
		c.mu.Lock()
		c.state = State{Phase: PhaseIdle}
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.input = ""
	c.state.PendingMessageID = userMsg.ID
	c.mu.Unlock()

	req := buildAnswerRequest(history, userMsg)
	done := make(chan Outcome, 1)
	go c.await(context.WithoutCancel(ctx), sessionID, req, done)
	return done, nil
}

// await runs the request and reconciles the reply into originID
func (c *Controller) await(ctx context.Context, originID string, req AnswerRequest, done chan<- Outcome) {
	outcome := Outcome{SessionID: originID}
	defer func() {
		if r := recover(); r != nil {
			LogError("Answer handling panicked: %v", r)
		}
		c.mu.Lock()
		c.state = State{Phase: PhaseIdle}
		c.mu.Unlock()
		done <- outcome
		close(done)
	}()

	answer, err := c.ask(ctx, req)
	var reply Message
	if err != nil {
		LogWarn("Request for session %s failed: %v", originID, err)
		outcome.Err = err
		reply = Message{
			ID:      c.ids.Next(),
			Role:    RoleAssistant,
			Content: ApologyText,
			Status:  StatusError,
			Error:   true,
		}
	} else {
		reply = Message{
			ID:         c.ids.Next(),
			Role:       RoleAssistant,
			Content:    answer.Text,
			Status:     StatusDelivered,
			References: answer.References,
		}
	}
	outcome.Message = reply

	if err := c.store.AppendMessage(originID, reply); err != nil {
		if errors.Is(err, ErrUnknownSession) {
			LogDebug("Session %s was deleted while pending, reply discarded", originID)
			outcome.Dropped = true
			return
		}
		LogError("Failed to record reply for %s: %v", originID, err)
	}
}

// ask converts panics and nil answers from the answerer into errors
func (c *Controller) ask(ctx context.Context, req AnswerRequest) (answer *Answer, err error) {
	defer func() {
		if r := recover(); r != nil {
			answer, err = nil, &TransportError{Err: errors.New("answerer panicked")}
		}
	}()

	answer, err = c.answerer.Ask(ctx, req)
	if err == nil && answer == nil {
		err = &TransportError{Err: errors.New("empty answer")}
	}
	return answer, err
}

// buildAnswerRequest sends the history as it stood before the new message,
// followed by the new message itself
func buildAnswerRequest(history []Message, userMsg Message) AnswerRequest {
	entries := make([]HistoryEntry, 0, len(history)+1)
	for _, msg := range history {
		role := RoleAssistant
		if msg.Role == RoleUser {
			role = RoleUser
		}
		entries = append(entries, HistoryEntry{Role: role, Content: msg.Content})
	}
	entries = append(entries, HistoryEntry{Role: RoleUser, Content: userMsg.Content})
	return AnswerRequest{Question: userMsg.Content, ChatHistory: entries}
}
