package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every candidate; the first failure
	// drops it.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting caps how many existing questions go into the prompt.
	MaxExisting int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
			&DedupValidator{},
		},
		MaxTokens:   2048,
		Temperature: 0.8,
		MaxExisting: 30,
	}
}
