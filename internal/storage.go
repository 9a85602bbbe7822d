package internal

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SnapshotKey is the namespace key the session set is stored under
const SnapshotKey = "curalinkai-chats"

const (
	recordTypeUser = "user"
	recordTypeAI   = "ai"
)

// Persister saves full snapshots of the session set
type Persister interface {
	Save(sessions []Session) error
}

// Persistence serializes the session set into a KVStore under a fixed key
type Persistence struct {
	kv  KVStore
	key string
}

// NewPersistence creates a Persistence using SnapshotKey
func NewPersistence(kv KVStore) *Persistence {
	return &Persistence{kv: kv, key: SnapshotKey}
}

// namedSessionRecord is the session value used once a display name is set
type namedSessionRecord struct {
	Name     string            `json:"__name"`
	Messages []json.RawMessage `json:"messages"`
}

type messageRecord struct {
	ID      int64           `json:"id"`
	Type    string          `json:"type"`
	Content string          `json:"content"`
	Status  string          `json:"status"`
	Error   bool            `json:"error,omitempty"`
	Sources json.RawMessage `json:"sources,omitempty"`
}

type referenceRecord struct {
	Title   string   `json:"title,omitempty"`
	URL     string   `json:"url,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Score   *float64 `json:"score,omitempty"`
}

// Save overwrites the snapshot with sessions
func (p *Persistence) Save(sessions []Session) error {
	data, err := EncodeSnapshot(sessions)
	if err != nil {
		return &StorageError{Key: p.key, Op: "save", Err: err}
	}
	if err := p.kv.Set(p.key, string(data)); err != nil {
		return &StorageError{Key: p.key, Op: "save", Err: err}
	}
	return nil
}

// Load reads the snapshot; ok is false when none exists or it cannot be parsed
func (p *Persistence) Load() ([]Session, bool) {
	raw, found, err := p.kv.Get(p.key)
	if err != nil {
		LogWarn("Failed to read snapshot: %v", &StorageError{Key: p.key, Op: "load", Err: err})
		return nil, false
	}
	if !found {
		return nil, false
	}

	sessions, err := DecodeSnapshot([]byte(raw))
	if err != nil {
		LogWarn("Ignoring unreadable snapshot: %v", &ParseError{Source: "snapshot", Key: p.key, Err: err})
		return nil, false
	}
	return sessions, true
}

// EncodeSnapshot renders sessions as an insertion-ordered JSON object keyed by session id
func EncodeSnapshot(sessions []Session) ([]byte, error) {
	om := orderedmap.New[string, json.RawMessage]()
	for _, session := range sessions {
		records := make([]json.RawMessage, 0, len(session.Messages))
		for _, msg := range session.Messages {
			rec, err := toMessageRecord(msg)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal message %d: %w", msg.ID, err)
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal message %d: %w", msg.ID, err)
			}
			records = append(records, data)
		}

		var value any = records
		if session.Name != "" {
			value = namedSessionRecord{Name: session.Name, Messages: records}
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal session %s: %w", session.ID, err)
		}
		om.Set(session.ID, data)
	}
	return json.Marshal(om)
}

// DecodeSnapshot parses a snapshot, dropping malformed message records
func DecodeSnapshot(data []byte) ([]Session, error) {
	om := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, om); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	sessions := make([]Session, 0, om.Len())
	for pair := om.Oldest(); pair != nil; pair = pair.Next() {
		session, err := decodeSessionValue(pair.Key, pair.Value)
		if err != nil {
			LogWarn("Dropping session %s: %v", pair.Key, err)
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func decodeSessionValue(id string, value json.RawMessage) (Session, error) {
	session := Session{ID: id, Messages: []Message{}}

	var records []json.RawMessage
	trimmed := bytes.TrimSpace(value)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return Session{}, err
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var named namedSessionRecord
		if err := json.Unmarshal(trimmed, &named); err != nil {
			return Session{}, err
		}
		session.Name = named.Name
		records = named.Messages
	default:
		return Session{}, fmt.Errorf("unexpected session value")
	}

	for _, raw := range records {
		var rec messageRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		msg, ok := fromMessageRecord(rec)
		if !ok {
			continue
		}
		session.Messages = append(session.Messages, msg)
	}
	return session, nil
}

func toMessageRecord(msg Message) (messageRecord, error) {
	rec := messageRecord{
		ID:      msg.ID,
		Type:    recordTypeUser,
		Content: msg.Content,
		Status:  string(msg.Status),
		Error:   msg.Error,
	}
	if msg.Role == RoleAssistant {
		rec.Type = recordTypeAI
	}
	if len(msg.References) == 0 {
		return rec, nil
	}

	sources := make([]referenceRecord, 0, len(msg.References))
	for _, ref := range msg.References {
		sources = append(sources, referenceRecord{
			Title:   ref.Title,
			URL:     ref.URL,
			Snippet: ref.Snippet,
			Score:   ref.Score,
		})
	}
	data, err := json.Marshal(sources)
	if err != nil {
		return messageRecord{}, err
	}
	rec.Sources = data
	return rec, nil
}

func fromMessageRecord(rec messageRecord) (Message, bool) {
	if rec.ID <= 0 {
		return Message{}, false
	}

	msg := Message{ID: rec.ID, Content: rec.Content, Error: rec.Error}
	switch rec.Type {
	case recordTypeUser:
		msg.Role = RoleUser
	case recordTypeAI:
		msg.Role = RoleAssistant
	default:
		return Message{}, false
	}

	switch Status(rec.Status) {
	case StatusSent, StatusDelivered, StatusError:
		msg.Status = Status(rec.Status)
	default:
		switch {
		case rec.Error:
			msg.Status = StatusError
		case msg.Role == RoleUser:
			msg.Status = StatusSent
		default:
			msg.Status = StatusDelivered
		}
	}

	// stored sources may be raw service output
	if len(rec.Sources) > 0 {
		msg.References = ParseReferences(rec.Sources)
	}
	return msg, true
}
