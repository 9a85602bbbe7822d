package internal

import "context"

// CreateTestSession creates a test session with a question, a referenced answer and a failed answer
func CreateTestSession(id string) *Session {
	score := 0.9
	return &Session{
		ID:   id,
		Name: "Test Conversation",
		Messages: []Message{
			{
				ID:      1000,
				Role:    RoleUser,
				Content: "What causes a fever?",
				Status:  StatusSent,
			},
			{
				ID:      1001,
				Role:    RoleAssistant,
				Content: "A fever is usually caused by an infection.",
				Status:  StatusDelivered,
				References: []Reference{
					{Title: "Fever", URL: "https://medlineplus.gov/fever.html", Score: &score},
				},
			},
			{
				ID:      1002,
				Role:    RoleUser,
				Content: "How long does it last?",
				Status:  StatusSent,
			},
			{
				ID:      1003,
				Role:    RoleAssistant,
				Content: ApologyText,
				Status:  StatusError,
				Error:   true,
			},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	return &Session{
		ID:       id,
		Messages: messages,
	}
}

// StubAnswerer is an Answerer driven by a function
type StubAnswerer struct {
	AskFunc func(req AnswerRequest) (*Answer, error)
}

func (s *StubAnswerer) Ask(_ context.Context, req AnswerRequest) (*Answer, error) {
	return s.AskFunc(req)
}

// BlockingAnswerer holds each request until Release is called
type BlockingAnswerer struct {
	Requests chan AnswerRequest
	release  chan result
}

type result struct {
	answer *Answer
	err    error
}

func NewBlockingAnswerer() *BlockingAnswerer {
	return &BlockingAnswerer{
		Requests: make(chan AnswerRequest, 1),
		release:  make(chan result),
	}
}

func (b *BlockingAnswerer) Ask(_ context.Context, req AnswerRequest) (*Answer, error) {
	b.Requests <- req
	r := <-b.release
	return r.answer, r.err
}

// Release resolves the pending request
func (b *BlockingAnswerer) Release(answer *Answer, err error) {
	b.release <- result{answer: answer, err: err}
}
