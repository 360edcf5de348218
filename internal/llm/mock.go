package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one queued result of a Mock.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Mock is a Provider that replays queued replies in order and records the
// requests it receives. An empty queue fails with ErrUnavailable.
type Mock struct {
	mu       sync.Mutex
	replies  []MockReply
	requests []Request
}

// NewMock creates a Mock with replies queued.
func NewMock(replies ...MockReply) *Mock {
	return &Mock{replies: replies}
}

func (m *Mock) ModelID() string { return "mock" }

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.replies) == 0 {
		return nil, &ProviderError{Kind: ErrUnavailable, Provider: "mock"}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if req.Schema != nil {
		if err := validateResponse(req.Schema, r.Content); err != nil {
			return nil, err
		}
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock"}, nil
}

// Queue appends replies.
func (m *Mock) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Requests returns the requests received so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
