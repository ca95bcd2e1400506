package questiongen

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "dedup", Message: "duplicate", Retryable: true}
	want := `validator "dedup": duplicate`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "answer", "dedup"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func good() Candidate {
	return Candidate{
		Text:    "Which city did the Abbasids found as their capital?",
		Choices: []string{"Baghdad", "Damascus", "Cairo", "Kufa"},
		Answer:  "Baghdad",
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		ok     bool
	}{
		{"valid", func(*Candidate) {}, true},
		{"empty text", func(c *Candidate) { c.Text = "  " }, false},
		{"long text", func(c *Candidate) { c.Text = strings.Repeat("a", maxQuestionLen+1) }, false},
		{"one choice", func(c *Candidate) { c.Choices = []string{"Baghdad"} }, false},
		{"seven choices", func(c *Candidate) { c.Choices = []string{"a", "b", "c", "d", "e", "f", "g"} }, false},
		{"blank choice", func(c *Candidate) { c.Choices[2] = "" }, false},
		{"long choice", func(c *Candidate) { c.Choices[1] = strings.Repeat("x", maxChoiceLen+1) }, false},
		{"empty answer", func(c *Candidate) { c.Answer = "" }, false},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := good()
			tt.mutate(&c)
			err := v.Validate(c, Input{})
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestAnswerValidator(t *testing.T) {
	v := &AnswerValidator{}
	if err := v.Validate(good(), Input{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := good()
	c.Answer = "Samarra"
	if err := v.Validate(c, Input{}); err == nil {
		t.Error("expected error for answer outside choices")
	}

	c = good()
	c.Choices = []string{"Baghdad", "baghdad!", "Cairo"}
	if err := v.Validate(c, Input{}); err == nil {
		t.Error("expected error for near-duplicate choices")
	}
}

func TestDedupValidator(t *testing.T) {
	v := &DedupValidator{}
	input := Input{Existing: []string{"which city did the ABBASIDS found as their capital"}}
	if err := v.Validate(good(), input); err == nil {
		t.Fatal("expected duplicate to be rejected")
	}
	if err := v.Validate(good(), Input{Existing: []string{"Who founded Baghdad?"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Who  won, at Hattin? ": "who won at hattin",
		"636 CE":                  "636 ce",
		"":                        "",
	}
	for in, want := range tests {
		if got := normalize(in); got != want {
			t.Errorf("normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 5); got != "None" {
		t.Errorf("empty: got %q", got)
	}
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("capped: got %q", got)
	}
}
