package internal

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status is the delivery status of a message
type Status string

const (
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusError     Status = "error"
)

const (
	// DefaultSessionID names the session created when nothing was persisted
	DefaultSessionID = "main"

	UntitledSessionLabel   = "Untitled Chat"
	UntitledReferenceTitle = "Untitled"
)

// Session is one independent conversation
type Session struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// Label returns the display name or the placeholder
func (s Session) Label() string {
	if strings.TrimSpace(s.Name) == "" {
		return UntitledSessionLabel
	}
	return s.Name
}

// Clone returns a deep copy of the session
func (s Session) Clone() Session {
	out := Session{ID: s.ID, Name: s.Name, Messages: make([]Message, len(s.Messages))}
	for i, msg := range s.Messages {
		out.Messages[i] = msg.Clone()
	}
	return out
}

// Message is one turn in a session
type Message struct {
	ID         int64       `json:"id" yaml:"id"`
	Role       Role        `json:"role" yaml:"role"`
	Content    string      `json:"content" yaml:"content"`
	Status     Status      `json:"status" yaml:"status"`
	Error      bool        `json:"error,omitempty" yaml:"error,omitempty"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty"`
}

// Clone returns a copy that shares no slices with m
func (m Message) Clone() Message {
	out := m
	if m.References != nil {
		out.References = make([]Reference, len(m.References))
		for i, ref := range m.References {
			out.References[i] = ref.Clone()
		}
	}
	return out
}

// Reference is a citation attached to an assistant message
type Reference struct {
	Title   string   `json:"title,omitempty" yaml:"title,omitempty"`
	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
	Snippet string   `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Score   *float64 `json:"score,omitempty" yaml:"score,omitempty"`
}

// DisplayTitle returns the title or the placeholder
func (r Reference) DisplayTitle() string {
	if r.Title == "" {
		return UntitledReferenceTitle
	}
	return r.Title
}

// RelevancePercent returns the score as a whole percentage, ok is false when unscored
func (r Reference) RelevancePercent() (int, bool) {
	if r.Score == nil {
		return 0, false
	}
	return int(math.Round(*r.Score * 100)), true
}

func (r Reference) Clone() Reference {
	out := r
	if r.Score != nil {
		score := *r.Score
		out.Score = &score
	}
	return out
}

// NewSessionID allocates a fresh session identifier
func NewSessionID() string {
	return "chat-" + uuid.NewString()
}

// IDGenerator hands out strictly increasing millisecond-based message ids
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator creates a generator driven by the wall clock
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns an id greater than every id previously returned or observed
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe makes sure future ids are greater than id
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}
