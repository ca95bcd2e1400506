package quiz

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Registration bounds for a user's age.
const (
	MinAge = 10
	MaxAge = 100
)

// Gender is the registration gender. Only the two values below are valid.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender maps user input to a Gender.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	}
	return "", invalid("gender", "must be male or female, got %q", s)
}

// User is a registered player. Score never goes negative.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Gender    Gender    `json:"gender"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser validates the registration fields and returns a user with zero
// score.
func NewUser(name string, age int, gender Gender) (User, error) {
	u := User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Age:       age,
		Gender:    gender,
		CreatedAt: time.Now(),
	}
	if err := u.Validate(); err != nil {
		return User{}, err
	}
	return u, nil
}

// Validate checks the user invariants.
func (u User) Validate() error {
	switch {
	case u.ID == "":
		return invalid("id", "must not be empty")
	case u.Name == "":
		return invalid("name", "must not be empty")
	case u.Age < MinAge || u.Age > MaxAge:
		return invalid("age", "must be between %d and %d, got %d", MinAge, MaxAge, u.Age)
	case u.Gender != GenderMale && u.Gender != GenderFemale:
		return invalid("gender", "must be male or female, got %q", u.Gender)
	case u.Score < 0:
		return invalid("score", "must not be negative")
	}
	return nil
}
