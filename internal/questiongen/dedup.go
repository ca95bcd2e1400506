package questiongen

import (
	"fmt"
	"strings"
	"unicode"
)

// DedupValidator rejects a candidate whose text matches an existing
// question, ignoring case, punctuation and spacing.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(c Candidate, input Input) *ValidationError {
	text := normalize(c.Text)
	for _, e := range input.Existing {
		if normalize(e) == text {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate of existing question %q", e),
				Retryable: true,
			}
		}
	}
	return nil
}

// normalize lowercases s and keeps only letters and digits separated by
// single spaces.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// buildDedup formats existing questions for the prompt, keeping the most
// recent max entries. Returns "None" if there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
