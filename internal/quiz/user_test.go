package quiz

import (
	"errors"
	"testing"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name   string
		uname  string
		age    int
		gender Gender
		field  string
	}{
		{"valid", "Amina", 20, GenderFemale, ""},
		{"lower age bound", "Omar", 10, GenderMale, ""},
		{"upper age bound", "Omar", 100, GenderMale, ""},
		{"blank name", "   ", 20, GenderMale, "name"},
		{"too young", "Omar", 9, GenderMale, "age"},
		{"too old", "Omar", 101, GenderMale, "age"},
		{"bad gender", "Omar", 30, Gender("other"), "gender"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.uname, tt.age, tt.gender)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("NewUser() error = %v", err)
				}
				if u.Score != 0 {
					t.Errorf("score = %d, want 0", u.Score)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.field {
				t.Errorf("NewUser() error = %v, want ValidationError on %q", err, tt.field)
			}
		})
	}
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]Gender{"male": GenderMale, "M": GenderMale, " Female ": GenderFemale, "f": GenderFemale} {
		got, err := ParseGender(in)
		if err != nil || got != want {
			t.Errorf("ParseGender(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseGender("x"); err == nil {
		t.Error("ParseGender(x) should fail")
	}
}
