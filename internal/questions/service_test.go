package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/questiongen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

func newTestService(t *testing.T, opts ...Option) (*Service, *state.Repo) {
	t.Helper()
	repo := state.New(store.NewMemoryKV())
	require.NoError(t, repo.SaveQuestions(context.Background(), nil))
	return NewService(repo, opts...), repo
}

func TestListDefaultsWhenUnset(t *testing.T) {
	s := NewService(state.New(store.NewMemoryKV()))
	qs := s.List(context.Background())
	assert.Len(t, qs, len(quiz.DefaultQuestions()))
}

func TestAddGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	q, err := s.Add(ctx, "Who won at Yarmouk?", []string{"Khalid ibn al-Walid", "Heraclius"}, "Khalid ibn al-Walid", quiz.SourceManual)
	require.NoError(t, err)

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Text, got.Text)

	require.NoError(t, s.Delete(ctx, q.ID))
	_, err = s.Get(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, q.ID), ErrNotFound)
}

func TestAddInvalid(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Add(context.Background(), "Q", []string{"A", "B"}, "C", quiz.SourceManual)
	assert.ErrorIs(t, err, quiz.ErrInvalid)
	assert.Empty(t, s.List(context.Background()))
}

func TestEditKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	q, err := s.Add(ctx, "Old?", []string{"A", "B"}, "A", quiz.SourceImported)
	require.NoError(t, err)

	edited, err := s.Edit(ctx, q.ID, "New?", []string{"X", "Y", "Z"}, "Z")
	require.NoError(t, err)
	assert.Equal(t, q.ID, edited.ID)
	assert.Equal(t, quiz.SourceImported, edited.Source)
	assert.True(t, q.CreatedAt.Equal(edited.CreatedAt))
	assert.Equal(t, "Z", edited.CorrectAnswer)

	list := s.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "New?", list[0].Text)

	_, err = s.Edit(ctx, "missing", "New?", []string{"X", "Y"}, "X")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportAcceptsOnlyValidRecords(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	payload := `[{"text":"Q","choices":["A","B"],"correctAnswer":"A"},{"text":"","choices":[],"correctAnswer":""}]`
	res, err := s.Import(ctx, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Dropped)

	list := s.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Q", list[0].Text)
	assert.Equal(t, quiz.SourceImported, list[0].Source)
	assert.NotEmpty(t, list[0].ID)
}

func TestImportDropsInvariantViolations(t *testing.T) {
	s, _ := newTestService(t)
	payload := `[
		{"text":"Answer missing","choices":["A","B"],"correctAnswer":"C"},
		{"text":"One choice","choices":["A"],"correctAnswer":"A"},
		{"text":"Choices wrong type","choices":"A,B","correctAnswer":"A"},
		"not an object",
		{"id":"keep-me-not","text":"Good","choices":["A","B","C"],"correctAnswer":"B","source":"manual"}
	]`
	res, err := s.Import(context.Background(), strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 4, res.Dropped)
	assert.NotEqual(t, "keep-me-not", res.Questions[0].ID)
	assert.Equal(t, quiz.SourceImported, res.Questions[0].Source)
}

func TestImportMalformed(t *testing.T) {
	for name, payload := range map[string]string{
		"object":  `{"text":"Q"}`,
		"garbage": `[{"text":`,
		"null":    `null`,
	} {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestService(t)
			_, err := s.Import(context.Background(), strings.NewReader(payload))
			assert.ErrorIs(t, err, ErrMalformedImport)
			assert.Empty(t, s.List(context.Background()))
		})
	}
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewService(state.New(store.NewMemoryKV()))

	var buf bytes.Buffer
	require.NoError(t, s.Export(ctx, &buf))
	assert.Contains(t, buf.String(), "\n  {")

	other, _ := newTestService(t)
	res, err := other.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, len(quiz.DefaultQuestions()), res.Accepted)
}

func TestExportEmpty(t *testing.T) {
	s, _ := newTestService(t)
	var buf bytes.Buffer
	require.NoError(t, s.Export(context.Background(), &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	payload := json.RawMessage(`{"questions":[
		{"question_text":"Which dynasty built the Alhambra?","choices":["Nasrid","Almohad","Umayyad","Ayyubid"],"answer":"Nasrid","explanation":""}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	s, _ := newTestService(t, WithGenerator(questiongen.New(mock, questiongen.DefaultConfig())))
	_, err := s.Add(ctx, "Existing?", []string{"A", "B"}, "A", quiz.SourceManual)
	require.NoError(t, err)

	res, err := s.Generate(ctx, "al-Andalus", 1)
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)

	list := s.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, quiz.SourceGenerated, list[1].Source)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "1. Existing?")
}

func TestGenerateWithoutGenerator(t *testing.T) {
	s, _ := newTestService(t)
	assert.False(t, s.CanGenerate())
	_, err := s.Generate(context.Background(), "x", 1)
	assert.True(t, errors.Is(err, ErrNoGenerator))
}

func TestSplitChoices(t *testing.T) {
	assert.Equal(t, []string{"Rome", "Carthage", "", "Athens"}, SplitChoices(" Rome ; Carthage;;Athens "))
	assert.Nil(t, SplitChoices("  "))
}
