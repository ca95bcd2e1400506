package achievements

import "time"

// Set is a collection of unlocked achievement IDs.
type Set map[ID]bool

// NewSet builds a Set from ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Has reports whether id is in the set. A nil Set is empty.
func (s Set) Has(id ID) bool { return s[id] }

// Unlocked is the persisted record of one achievement earned by one user.
type Unlocked struct {
	ID         ID        `json:"id"`
	UserID     string    `json:"userId"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// SetFor collects the IDs userID has unlocked.
func SetFor(records []Unlocked, userID string) Set {
	s := make(Set)
	for _, r := range records {
		if r.UserID == userID {
			s[r.ID] = true
		}
	}
	return s
}

// ForUser returns userID's records, oldest first as stored.
func ForUser(records []Unlocked, userID string) []Unlocked {
	var out []Unlocked
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Merge appends newly unlocked achievements for userID, skipping any the
// user already holds. The input slice is not modified.
func Merge(records []Unlocked, userID string, newly []Achievement) []Unlocked {
	have := SetFor(records, userID)
	out := append([]Unlocked(nil), records...)
	for _, a := range newly {
		if have.Has(a.ID) {
			continue
		}
		have[a.ID] = true
		out = append(out, Unlocked{ID: a.ID, UserID: userID, UnlockedAt: a.UnlockedAt})
	}
	return out
}
