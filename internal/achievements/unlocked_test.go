package achievements

import (
	"testing"
	"time"
)

func TestMerge(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	records := []Unlocked{
		{ID: FirstCorrect, UserID: "u1", UnlockedAt: at},
		{ID: FirstCorrect, UserID: "u2", UnlockedAt: at},
	}
	newly := []Achievement{
		{ID: FirstCorrect, UnlockedAt: at.Add(time.Hour)},
		{ID: SpeedDemon, UnlockedAt: at.Add(time.Hour)},
	}

	merged := Merge(records, "u1", newly)
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	if merged[2].ID != SpeedDemon || merged[2].UserID != "u1" || !merged[2].UnlockedAt.Equal(at.Add(time.Hour)) {
		t.Errorf("appended record = %+v", merged[2])
	}
	if len(records) != 2 {
		t.Error("Merge modified its input")
	}

	set := SetFor(merged, "u1")
	if !set.Has(FirstCorrect) || !set.Has(SpeedDemon) || set.Has(Scholar) {
		t.Errorf("SetFor(u1) = %v", set)
	}
	if got := ForUser(merged, "u2"); len(got) != 1 {
		t.Errorf("ForUser(u2) = %v", got)
	}
}

func TestNilSetIsEmpty(t *testing.T) {
	var s Set
	if s.Has(FirstCorrect) {
		t.Error("nil set should be empty")
	}
}
