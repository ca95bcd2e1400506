package llm

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"questions":[]}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	p := WithLogging(mock, ProviderMock, s.EventRepo())

	ctx := WithPurpose(context.Background(), "question-gen")
	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "Topic: Rome"}},
		Schema:   &Schema{Name: "batch", Definition: map[string]any{"type": "object"}},
	}
	_, err = p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.ErrorMessage)
	assert.True(t, ok.Success)
	assert.Equal(t, "question-gen", ok.Purpose)
	assert.Equal(t, ProviderMock, ok.Provider)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[schema: batch]")
	assert.Contains(t, ok.RequestBody, "Topic: Rome")
	assert.JSONEq(t, `{"questions":[]}`, ok.ResponseBody)
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
