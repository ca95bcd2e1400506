package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

func TestBackupRestore(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	src, _ := newTestRoster(t, WithVersion("1.4.0"), WithClock(func() time.Time { return at }))
	u := register(t, src, "Hind", 40)

	var buf bytes.Buffer
	require.NoError(t, src.Backup(ctx, &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "1.4.0", raw["appVersion"])
	assert.Equal(t, "2025-03-01T12:00:00Z", raw["timestamp"])
	for _, k := range []string{"questions", "users", "achievements"} {
		assert.Contains(t, raw, k)
	}

	dst, repo := newTestRoster(t, WithVersion("1.9.2"))
	b, err := dst.Restore(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, b.Users, 1)

	users := dst.Users(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
	assert.Equal(t, 40, users[0].Score)
	assert.Len(t, repo.Questions(ctx), len(quiz.DefaultQuestions()))
}

func TestRestoreKeepsCurrentUserOnlyIfPresent(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestRoster(t)
	var buf bytes.Buffer
	require.NoError(t, src.Backup(ctx, &buf))

	dst, _ := newTestRoster(t)
	register(t, dst, "Local", 5)
	_, err := dst.Restore(ctx, &buf)
	require.NoError(t, err)

	_, ok := dst.Current(ctx)
	assert.False(t, ok)
}

func TestRestoreRejectsMajorMismatch(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRoster(t, WithVersion("2.0.0"))
	register(t, r, "Keep", 1)

	_, err := r.Restore(ctx, strings.NewReader(`{"questions":[],"users":[],"achievements":[],"appVersion":"1.0.0"}`))
	assert.ErrorIs(t, err, ErrIncompatibleBackup)
	assert.Len(t, r.Users(ctx), 1)
}

func TestRestoreDevBuildAcceptsAnyMajor(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRoster(t, WithDevBuild())

	_, err := r.Restore(ctx, strings.NewReader(`{"questions":[],"users":[],"achievements":[],"appVersion":"3.1.0"}`))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, r.Backup(ctx, &buf))
	assert.Contains(t, buf.String(), `"appVersion": "`+DefaultVersion+`"`)
}

func TestRestoreMalformed(t *testing.T) {
	r, _ := newTestRoster(t)
	_, err := r.Restore(context.Background(), strings.NewReader(`[1,2`))
	assert.ErrorIs(t, err, ErrMalformedBackup)
}

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		backup, running string
		ok              bool
	}{
		{"1.0.0", "1.2.3", true},
		{"v1.0.0", "1.2.3", true},
		{"1.0.0", "2.0.0", false},
		{"banana", "1.0.0", false},
		{"", "1.0.0", false},
		{"3.1.0", "(devel)", true},
		{"3.1.0", "", true},
		{"banana", "", false},
	}
	for _, tt := range tests {
		err := checkVersion(tt.backup, tt.running)
		if (err == nil) != tt.ok {
			t.Errorf("checkVersion(%q, %q) = %v, want ok=%v", tt.backup, tt.running, err, tt.ok)
		}
	}
}

func TestRestoreSkipsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRoster(t)
	payload := `{
		"questions": [{"id":"q1","text":"Q","choices":["A","B"],"correctAnswer":"C","source":"manual"}],
		"users": [{"id":"u1","name":"Ok","age":30,"gender":"male","score":3}, {"id":"u2","name":"","age":30,"gender":"male"}],
		"achievements": [],
		"appVersion": "1.0.0"
	}`
	b, err := r.Restore(ctx, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Empty(t, b.Questions)
	assert.Len(t, b.Users, 1)
}
