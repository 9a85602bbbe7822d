package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	// DefaultEndpoint is where the answering service listens by default
	DefaultEndpoint = "http://127.0.0.1:8000/chat"

	NoAnswerText = "No answer returned."
	ApologyText  = "Sorry, I encountered an issue processing your request."

	maxResponseBytes = 8 << 20
)

// HistoryEntry is one prior turn as sent to the answering service
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// AnswerRequest is the outbound payload
type AnswerRequest struct {
	Question    string         `json:"question"`
	ChatHistory []HistoryEntry `json:"chatHistory"`
}

// Answer is a decoded response
type Answer struct {
	Text       string
	References []Reference
}

// Answerer asks the answering service one question
type Answerer interface {
	Ask(ctx context.Context, req AnswerRequest) (*Answer, error)
}

// HTTPAnswerer talks to the answering service over HTTP
type HTTPAnswerer struct {
	endpoint string
	client   *http.Client
}

// NewHTTPAnswerer creates an answerer for endpoint. The client has no
// timeout; a request runs until the service answers or the transport fails.
func NewHTTPAnswerer(endpoint string, client *http.Client) *HTTPAnswerer {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPAnswerer{endpoint: endpoint, client: client}
}

// Endpoint returns the configured URL
func (a *HTTPAnswerer) Endpoint() string {
	return a.endpoint
}

// Ask posts req and decodes the response. Every failure is a *TransportError.
func (a *HTTPAnswerer) Ask(ctx context.Context, req AnswerRequest) (*Answer, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Endpoint: a.endpoint, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Endpoint: a.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: a.endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: a.endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Endpoint: a.endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	answer, err := ParseAnswer(data)
	if err != nil {
		return nil, &TransportError{
			Endpoint:   a.endpoint,
			StatusCode: resp.StatusCode,
			Err:        &ParseError{Source: "response", Key: a.endpoint, Err: err},
		}
	}
	return answer, nil
}

// ParseAnswer decodes a response body. The body must be a JSON object; a
// missing or non-string answer becomes NoAnswerText and sources are parsed
// leniently.
func ParseAnswer(data []byte) (*Answer, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("response is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("response is not a JSON object")
	}

	answer := &Answer{Text: NoAnswerText}
	if a := root.Get("answer"); a.Type == gjson.String {
		answer.Text = a.Str
	}
	answer.References = parseReferenceList(root.Get("sources"))
	return answer, nil
}

// ParseReferences parses a JSON array of sources. Anything that is not an
// array yields no references.
func ParseReferences(data []byte) []Reference {
	if !gjson.ValidBytes(data) {
		return nil
	}
	return parseReferenceList(gjson.ParseBytes(data))
}

func parseReferenceList(sources gjson.Result) []Reference {
	if !sources.IsArray() {
		return nil
	}

	var refs []Reference
	sources.ForEach(func(_, entry gjson.Result) bool {
		if ref, ok := parseReference(entry); ok {
			refs = append(refs, ref)
		}
		return true
	})
	return refs
}

// parseReference normalizes one source entry. Entries that are not objects
// or carry none of title, url and snippet are rejected.
func parseReference(entry gjson.Result) (Reference, bool) {
	if !entry.IsObject() {
		return Reference{}, false
	}

	ref := Reference{
		Title:   stringField(entry, "title"),
		URL:     stringField(entry, "url"),
		Snippet: stringField(entry, "snippet"),
	}
	if ref.Title == "" && ref.URL == "" && ref.Snippet == "" {
		return Reference{}, false
	}

	for _, field := range []string{"score", "relevance"} {
		v := entry.Get(field)
		if v.Type != gjson.Number {
			continue
		}
		if v.Num < 0 || v.Num > 1 {
			continue
		}
		score := v.Num
		ref.Score = &score
		break
	}
	return ref, true
}

func stringField(entry gjson.Result, field string) string {
	v := entry.Get(field)
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.Str)
}

// ProbeEndpoint checks that something answers HTTP at endpoint. Any
// response counts, including 404 and 405, since the service only accepts
// POST requests carrying a question.
func ProbeEndpoint(ctx context.Context, endpoint string, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}
