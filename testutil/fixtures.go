package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// SnapshotFixture is a persisted session set with one named and one unnamed session
const SnapshotFixture = `{
  "main": [
    {"id": 1000, "type": "user", "content": "What causes a fever?", "status": "sent"},
    {"id": 1001, "type": "ai", "content": "Usually an infection.", "status": "delivered",
     "sources": [{"title": "Fever", "url": "https://medlineplus.gov/fever.html", "score": 0.9}]}
  ],
  "chat-2": {"__name": "Headaches", "messages": [
    {"id": 2000, "type": "user", "content": "Why do I get headaches?", "status": "sent"},
    {"id": 2001, "type": "ai", "content": "Sorry, I encountered an issue processing your request.", "status": "error", "error": true}
  ]}
}`

// FeverResponse is a successful answering service response
const FeverResponse = `{"answer":"Fever is most often caused by infection.","sources":[{"title":"Fever","url":"https://medlineplus.gov/fever.html","score":0.9}]}`

// ChatRequest mirrors the payload the answering service receives
type ChatRequest struct {
	Question    string `json:"question"`
	ChatHistory []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"chatHistory"`
}

// AnswerServer is a fake answering service
type AnswerServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []ChatRequest
}

// NewAnswerServer starts a fake service replying with status and body
func NewAnswerServer(t *testing.T, status int, body string) *AnswerServer {
	t.Helper()
	s := &AnswerServer{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Endpoint returns the chat URL
func (s *AnswerServer) Endpoint() string {
	return s.URL + "/chat"
}

// Requests returns the decoded requests received so far
func (s *AnswerServer) Requests() []ChatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ChatRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *AnswerServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/chat" {
		http.NotFound(w, r)
		return
	}

	data, _ := io.ReadAll(r.Body)
	var req ChatRequest
	_ = json.Unmarshal(data, &req)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status, body := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
