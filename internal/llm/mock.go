package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

const mockModel = "mock"

var errMockExhausted = errors.New("mock provider has no responses left")

// MockResponse is one scripted reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order. Once the script runs out
// it serves Offline, if set, to every further request; this is how the
// "mock" provider generates questions without network access.
type MockProvider struct {
	mu      sync.Mutex
	script  []MockResponse
	Offline json.RawMessage
	Calls   []Request
}

// NewMockProvider scripts the given replies.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// NewOfflineProvider serves content to every request.
func NewOfflineProvider(content json.RawMessage) *MockProvider {
	return &MockProvider{Offline: content}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case m.Offline != nil:
		next = MockResponse{Content: m.Offline, Usage: estimateUsage(req, m.Offline)}
	default:
		return nil, &ErrProviderUnavailable{Err: errMockExhausted}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      mockModel,
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return mockModel }

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CallCount is the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// estimateUsage approximates token counts at four bytes a token so offline
// runs still show up in the usage report.
func estimateUsage(req Request, out json.RawMessage) Usage {
	in := len(req.System)
	for _, msg := range req.Messages {
		in += len(msg.Content)
	}
	u := Usage{InputTokens: (in + 3) / 4, OutputTokens: (len(out) + 3) / 4}
	u.TotalTokens = u.InputTokens + u.OutputTokens
	return u
}
