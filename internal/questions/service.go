// Package questions manages the question bank: authoring, JSON
// import/export and LLM-backed generation.
package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/questiongen"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
)

var (
	// ErrNotFound is returned when no question has the requested ID.
	ErrNotFound = errors.New("question not found")

	// ErrNoGenerator is returned by Generate when no LLM is configured.
	ErrNoGenerator = errors.New("question generation is not configured")
)

// Generator produces new questions. *questiongen.LLMGenerator satisfies it.
type Generator interface {
	Generate(ctx context.Context, input questiongen.Input) (questiongen.Result, error)
}

// Service reads and writes the question list held in a state.Repo.
// Every mutation rewrites the whole list.
type Service struct {
	repo *state.Repo
	gen  Generator
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator enables Generate.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.gen = g }
}

// NewService creates a Service over repo.
func NewService(repo *state.Repo, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CanGenerate reports whether a generator is configured.
func (s *Service) CanGenerate() bool { return s.gen != nil }

// List returns the question bank in stored order.
func (s *Service) List(ctx context.Context) []quiz.Question {
	return s.repo.Questions(ctx)
}

// Get returns the question with the given ID.
func (s *Service) Get(ctx context.Context, id string) (quiz.Question, error) {
	qs := s.List(ctx)
	i := indexOf(qs, id)
	if i < 0 {
		return quiz.Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return qs[i], nil
}

// Add validates and appends a new question.
func (s *Service) Add(ctx context.Context, text string, choices []string, correct string, source quiz.Source) (quiz.Question, error) {
	q, err := quiz.NewQuestion(text, choices, correct, source)
	if err != nil {
		return quiz.Question{}, err
	}
	qs := append(s.List(ctx), q)
	if err := s.repo.SaveQuestions(ctx, qs); err != nil {
		return quiz.Question{}, fmt.Errorf("add question: %w", err)
	}
	slog.Info("question added", "id", q.ID, "source", q.Source)
	return q, nil
}

// Delete removes the question with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	qs := s.List(ctx)
	i := indexOf(qs, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	qs = slices.Delete(qs, i, i+1)
	if err := s.repo.SaveQuestions(ctx, qs); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	slog.Info("question deleted", "id", id)
	return nil
}

// Edit replaces the text, choices and answer of an existing question.
// ID, Source and CreatedAt are kept.
func (s *Service) Edit(ctx context.Context, id, text string, choices []string, correct string) (quiz.Question, error) {
	qs := s.List(ctx)
	i := indexOf(qs, id)
	if i < 0 {
		return quiz.Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	edited, err := quiz.NewQuestion(text, choices, correct, qs[i].Source)
	if err != nil {
		return quiz.Question{}, err
	}
	edited.ID = qs[i].ID
	edited.CreatedAt = qs[i].CreatedAt
	qs[i] = edited

	if err := s.repo.SaveQuestions(ctx, qs); err != nil {
		return quiz.Question{}, fmt.Errorf("edit question: %w", err)
	}
	return edited, nil
}

// Generate asks the configured generator for n questions on topic and
// appends the accepted ones to the bank.
func (s *Service) Generate(ctx context.Context, topic string, n int) (questiongen.Result, error) {
	if s.gen == nil {
		return questiongen.Result{}, ErrNoGenerator
	}

	qs := s.List(ctx)
	existing := make([]string, len(qs))
	for i, q := range qs {
		existing[i] = q.Text
	}

	res, err := s.gen.Generate(ctx, questiongen.Input{Topic: topic, Count: n, Existing: existing})
	if err != nil {
		return res, err
	}
	if err := s.repo.SaveQuestions(ctx, append(qs, res.Questions...)); err != nil {
		return res, fmt.Errorf("save generated questions: %w", err)
	}
	return res, nil
}

// ChoiceSeparator separates choices in single-line authoring input.
const ChoiceSeparator = ";"

// SplitChoices splits single-line input on ChoiceSeparator and trims each
// entry. Blank entries are kept so validation can report them.
func SplitChoices(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ChoiceSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func indexOf(qs []quiz.Question, id string) int {
	return slices.IndexFunc(qs, func(q quiz.Question) bool { return q.ID == id })
}
