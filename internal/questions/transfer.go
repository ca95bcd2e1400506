package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// ErrMalformedImport is returned when an import payload is not a JSON
// array. Nothing is imported in that case.
var ErrMalformedImport = errors.New("malformed import: expected a JSON array of questions")

// ImportResult reports the outcome of Import.
type ImportResult struct {
	Accepted  int
	Dropped   int
	Questions []quiz.Question
}

const recordSchemaURL = "schema://history-vault/question-record.json"

// recordSchema is the shape every imported record must have. Choice and
// answer invariants are then enforced by quiz.NewQuestion.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"text", "choices", "correctAnswer"},
	"properties": map[string]any{
		"text":          map[string]any{"type": "string", "minLength": 1},
		"choices":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"correctAnswer": map[string]any{"type": "string", "minLength": 1},
	},
}

var compileRecordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, recordSchema); err != nil {
		return nil, err
	}
	return c.Compile(recordSchemaURL)
})

type record struct {
	Text          string   `json:"text"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Import appends the valid records of a JSON array to the bank. Records
// that fail validation are dropped; accepted records get fresh IDs and
// the imported source.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	doc, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	items, ok := doc.([]any)
	if !ok {
		return ImportResult{}, ErrMalformedImport
	}

	schema, err := compileRecordSchema()
	if err != nil {
		return ImportResult{}, fmt.Errorf("compile record schema: %w", err)
	}

	var res ImportResult
	for i, item := range items {
		q, err := decodeRecord(schema, item)
		if err != nil {
			slog.Debug("import record dropped", "index", i, "err", err)
			res.Dropped++
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	res.Accepted = len(res.Questions)

	if res.Accepted > 0 {
		if err := s.repo.SaveQuestions(ctx, append(s.List(ctx), res.Questions...)); err != nil {
			return ImportResult{}, fmt.Errorf("save imported questions: %w", err)
		}
	}
	slog.Info("questions imported", "accepted", res.Accepted, "dropped", res.Dropped)
	return res, nil
}

func decodeRecord(schema *jsonschema.Schema, item any) (quiz.Question, error) {
	if err := schema.Validate(item); err != nil {
		return quiz.Question{}, err
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return quiz.Question{}, err
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return quiz.Question{}, err
	}
	return quiz.NewQuestion(rec.Text, rec.Choices, rec.CorrectAnswer, quiz.SourceImported)
}

// Export writes the whole bank as an indented JSON array.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	qs := s.List(ctx)
	if qs == nil {
		qs = []quiz.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(qs); err != nil {
		return fmt.Errorf("export questions: %w", err)
	}
	return nil
}
