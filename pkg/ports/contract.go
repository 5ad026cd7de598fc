package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dag2langgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Set and Get output", func(t *testing.T) {
		key := prefix + "-ok"
		want := CachedResult{Output: []byte(`{"entry_point":"start"}`), Nodes: 3, Edges: 2}

		require.NoError(t, cache.Set(ctx, key, want), "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, want, got)
	})

	t.Run("Set and Get rejection", func(t *testing.T) {
		key := prefix + "-rejected"
		want := CachedResult{Kind: domain.KindMissingEntryPoint}

		require.NoError(t, cache.Set(ctx, key, want))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, domain.KindMissingEntryPoint, got.Kind)
		assert.Empty(t, got.Output)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, prefix+"-missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := prefix + "-overwrite"
		require.NoError(t, cache.Set(ctx, key, CachedResult{Kind: domain.KindInvalidStructure}))
		require.NoError(t, cache.Set(ctx, key, CachedResult{Output: []byte("{}")}))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), got.Output)
		assert.Empty(t, got.Kind)
	})

	t.Run("Isolation", func(t *testing.T) {
		key := prefix + "-isolation"
		output := []byte("{}")
		require.NoError(t, cache.Set(ctx, key, CachedResult{Output: output}))
		output[0] = 'X'

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), got.Output, "cached bytes must not alias the caller's buffer")
	})
}
