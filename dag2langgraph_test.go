package dag2langgraph_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dag2langgraph"
	"github.com/aretw0/dag2langgraph/pkg/adapters/memory"
	"github.com/aretw0/dag2langgraph/pkg/codec"
	"github.com/aretw0/dag2langgraph/pkg/domain"
	"github.com/aretw0/dag2langgraph/pkg/ports"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

type recorder struct {
	mu       sync.Mutex
	events    []domain.ConversionEvent
	rejected  []domain.ConversionEvent
	validated []domain.ConversionEvent
}

func (r *recorder) hooks() domain.ConversionHooks {
	return domain.ConversionHooks{
		OnConverted: func(_ context.Context, ev *domain.ConversionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events = append(r.events, *ev)
		},
		OnRejected: func(_ context.Context, ev *domain.ConversionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.rejected = append(r.rejected, *ev)
		},
		OnValidated: func(_ context.Context, ev *domain.ConversionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.validated = append(r.validated, *ev)
		},
	}
}

func TestConvertDocument_Fixtures(t *testing.T) {
	conv := dag2langgraph.New()
	ctx := context.Background()

	t.Run("sample json", func(t *testing.T) {
		out, err := conv.ConvertDocument(ctx, readFixture(t, "sample_dag.json"), codec.FormatJSON, codec.DefaultIndent)
		require.NoError(t, err)
		assert.Equal(t, string(readFixture(t, "sample_dag.out.json")), string(out))
	})

	t.Run("sample yaml", func(t *testing.T) {
		out, err := conv.ConvertDocument(ctx, readFixture(t, "sample_dag.yaml"), codec.FormatYAML, codec.DefaultIndent)
		require.NoError(t, err)
		assert.Equal(t, string(readFixture(t, "sample_dag.out.json")), string(out))
	})

	failures := map[string]error{
		"missing_entry_point.json": domain.ErrMissingEntryPoint,
		"cycle_dag.json":           domain.ErrInvalidStructure,
		"invalid_edge.json":        domain.ErrInvalidStructure,
	}
	for name, want := range failures {
		t.Run(name, func(t *testing.T) {
			out, err := conv.ConvertDocument(ctx, readFixture(t, name), codec.FormatJSON, codec.DefaultIndent)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, want)
		})
	}

	t.Run("malformed bytes", func(t *testing.T) {
		_, err := conv.ConvertDocument(ctx, []byte("{"), codec.FormatJSON, codec.DefaultIndent)
		var decodeErr *codec.DecodeError
		assert.True(t, errors.As(err, &decodeErr))
		_, isValidation := domain.KindOf(err)
		assert.False(t, isValidation)
	})
}

func TestConvertDocument_Cache(t *testing.T) {
	cache := memory.NewCache()
	rec := &recorder{}
	conv := dag2langgraph.New(dag2langgraph.WithCache(cache), dag2langgraph.WithHooks(rec.hooks()))
	ctx := context.Background()
	sample := readFixture(t, "sample_dag.json")

	first, err := conv.ConvertDocument(ctx, sample, codec.FormatJSON, 2)
	require.NoError(t, err)
	second, err := conv.ConvertDocument(ctx, sample, codec.FormatJSON, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, rec.events, 2)
	assert.False(t, rec.events[0].Cached)
	assert.True(t, rec.events[1].Cached)
	assert.Equal(t, 3, rec.events[1].Nodes)
	assert.Equal(t, 2, rec.events[1].Edges)

	// A different indent is a different rendering.
	compact, err := conv.ConvertDocument(ctx, sample, codec.FormatJSON, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, compact)
	assert.Equal(t, 2, cache.Len())

	// Rejections replay with the same kind.
	cycle := readFixture(t, "cycle_dag.json")
	for i := 0; i < 2; i++ {
		_, err := conv.ConvertDocument(ctx, cycle, codec.FormatJSON, 2)
		assert.ErrorIs(t, err, domain.ErrInvalidStructure)
	}
	require.Len(t, rec.rejected, 2)
	assert.False(t, rec.rejected[0].Cached)
	assert.True(t, rec.rejected[1].Cached)
	assert.Equal(t, domain.KindInvalidStructure, rec.rejected[1].Kind)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (ports.CachedResult, error) {
	return ports.CachedResult{}, errors.New("connection refused")
}

func (brokenCache) Set(context.Context, string, ports.CachedResult) error {
	return errors.New("connection refused")
}

func TestConvertDocument_CacheFailuresAreNotFatal(t *testing.T) {
	conv := dag2langgraph.New(dag2langgraph.WithCache(brokenCache{}))

	out, err := conv.ConvertDocument(context.Background(), readFixture(t, "sample_dag.json"), codec.FormatJSON, 2)
	require.NoError(t, err)
	assert.Equal(t, string(readFixture(t, "sample_dag.out.json")), string(out))
}

func TestValidate(t *testing.T) {
	rec := &recorder{}
	conv := dag2langgraph.New(dag2langgraph.WithHooks(rec.hooks()))
	ctx := context.Background()

	assert.NoError(t, conv.Validate(ctx, readFixture(t, "sample_dag.yaml"), codec.FormatYAML))
	assert.ErrorIs(t, conv.Validate(ctx, readFixture(t, "missing_entry_point.json"), codec.FormatJSON), domain.ErrMissingEntryPoint)
	assert.ErrorIs(t, conv.Validate(ctx, readFixture(t, "invalid_edge.json"), codec.FormatJSON), domain.ErrInvalidStructure)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, conv.Validate(ctx, []byte("{"), codec.FormatJSON), &decodeErr)

	require.Len(t, rec.validated, 3)
	assert.Empty(t, rec.validated[0].Kind)
	assert.Positive(t, rec.validated[0].Nodes)
	assert.Equal(t, domain.KindMissingEntryPoint, rec.validated[1].Kind)
	assert.Equal(t, domain.KindInvalidStructure, rec.validated[2].Kind)
	assert.Zero(t, rec.validated[2].Nodes)

	assert.Empty(t, rec.events, "validation does not count as conversion")
	assert.Empty(t, rec.rejected)
}

func TestConvert_Concurrent(t *testing.T) {
	conv := dag2langgraph.New(dag2langgraph.WithCache(memory.NewCache()))
	sample := readFixture(t, "sample_dag.json")
	want := string(readFixture(t, "sample_dag.out.json"))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := conv.ConvertDocument(context.Background(), sample, codec.FormatJSON, 2)
			if err == nil && string(out) != want {
				err = errors.New("unexpected output")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestCacheKey(t *testing.T) {
	data := []byte(`{"entry_point":"a"}`)
	assert.Equal(t, dag2langgraph.CacheKey(data, codec.FormatJSON, 2), dag2langgraph.CacheKey(data, codec.FormatJSON, 2))
	assert.NotEqual(t, dag2langgraph.CacheKey(data, codec.FormatJSON, 2), dag2langgraph.CacheKey(data, codec.FormatYAML, 2))
	assert.NotEqual(t, dag2langgraph.CacheKey(data, codec.FormatJSON, 2), dag2langgraph.CacheKey(data, codec.FormatJSON, 4))
	assert.Len(t, dag2langgraph.CacheKey(data, codec.FormatJSON, 2), 64)
}
