package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kvImplementations(t *testing.T) map[string]KV {
	return map[string]KV{
		"sqlite": openTestStore(t).KV(),
		"memory": NewMemoryKV(),
	}
}

func TestKVGetSet(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := kv.Get(ctx, "users")
			require.NoError(t, err)
			assert.False(t, ok, "missing key should report absent")

			require.NoError(t, kv.Set(ctx, "users", `[]`))
			v, ok, err := kv.Get(ctx, "users")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[]`, v)

			// Last write wins.
			require.NoError(t, kv.Set(ctx, "users", `[{"id":"1"}]`))
			v, _, err = kv.Get(ctx, "users")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"1"}]`, v)
		})
	}
}

func TestKVEmptyValueIsPresent(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, "k", ""))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestKVDeleteClearKeys(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, k := range []string{"questions", "currentUser", "users"} {
				require.NoError(t, kv.Set(ctx, k, "x"))
			}

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"currentUser", "questions", "users"}, keys)

			require.NoError(t, kv.Delete(ctx, "currentUser"))
			require.NoError(t, kv.Delete(ctx, "never-set"))
			_, ok, err := kv.Get(ctx, "currentUser")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, kv.Clear(ctx))
			keys, err = kv.Keys(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}
