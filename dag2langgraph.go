package dag2langgraph

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/dag2langgraph/pkg/codec"
	"github.com/aretw0/dag2langgraph/pkg/converter"
	"github.com/aretw0/dag2langgraph/pkg/domain"
	"github.com/aretw0/dag2langgraph/pkg/ports"
)

// Converter is the high-level entry point for the library.
// It wraps the pure converter with decoding, caching and observability.
// A Converter is safe for concurrent use.
type Converter struct {
	cache  ports.ResultCache
	hooks  domain.ConversionHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a functional option for configuring the Converter.
type Option func(*Converter)

// WithCache memoizes ConvertDocument results.
func WithCache(cache ports.ResultCache) Option {
	return func(c *Converter) {
		c.cache = cache
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.ConversionHooks) Option {
	return func(c *Converter) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Convert validates an already decoded document and maps it to the runtime format.
func (c *Converter) Convert(ctx context.Context, raw any) (*domain.OutputGraph, error) {
	start := c.now()
	out, err := converter.Convert(raw)
	if err != nil {
		c.rejected(ctx, start, err, false)
		return nil, err
	}
	c.converted(ctx, start, out.Nodes.Len(), len(out.Edges), false)
	return out, nil
}

// Validate decodes data and runs every check without producing output.
// Decode failures are not reported to hooks.
func (c *Converter) Validate(ctx context.Context, data []byte, format codec.Format) error {
	raw, err := codec.Decode(data, format)
	if err != nil {
		return err
	}
	start := c.now()
	g, err := converter.Validate(raw)

	ev := &domain.ConversionEvent{Timestamp: start, Duration: c.now().Sub(start)}
	if err != nil {
		ev.Kind = kindOf(err)
		c.logger.DebugContext(ctx, "Document rejected", "kind", ev.Kind, "duration", ev.Duration)
	} else {
		ev.Nodes, ev.Edges = len(g.Nodes), len(g.Edges)
	}
	if c.hooks.OnValidated != nil {
		c.hooks.OnValidated(ctx, ev)
	}
	return err
}

// ConvertDocument decodes data, converts it and encodes the result as JSON
// with the given indent. Results, including rejections, are served from and
// stored in the configured cache. Cache failures are logged, never returned.
func (c *Converter) ConvertDocument(ctx context.Context, data []byte, format codec.Format, indent int) ([]byte, error) {
	start := c.now()
	key := CacheKey(data, format, indent)

	if c.cache != nil {
		hit, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.DebugContext(ctx, "Result cache hit", "key", key)
			if hit.Kind != "" {
				verr := domain.NewValidationError(hit.Kind)
				c.rejected(ctx, start, verr, true)
				return nil, verr
			}
			c.converted(ctx, start, hit.Nodes, hit.Edges, true)
			return hit.Output, nil
		case !errors.Is(err, ports.ErrCacheMiss):
			c.logger.WarnContext(ctx, "Result cache lookup failed", "error", err)
		}
	}

	raw, err := codec.Decode(data, format)
	if err != nil {
		return nil, err
	}

	out, err := c.Convert(ctx, raw)
	if err != nil {
		if kind, ok := domain.KindOf(err); ok {
			c.store(ctx, key, ports.CachedResult{Kind: kind})
		}
		return nil, err
	}

	encoded, err := codec.Encode(out, indent)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, ports.CachedResult{Output: encoded, Nodes: out.Nodes.Len(), Edges: len(out.Edges)})
	return encoded, nil
}

// CacheKey identifies a document and its rendering options. The module
// version is part of the key so upgrades never replay stale output.
func CacheKey(data []byte, format codec.Format, indent int) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%d\x00", strings.TrimSpace(Version), format, indent)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Converter) store(ctx context.Context, key string, result ports.CachedResult) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, result); err != nil {
		c.logger.WarnContext(ctx, "Result cache store failed", "error", err)
	}
}

func (c *Converter) converted(ctx context.Context, start time.Time, nodes, edges int, cached bool) {
	ev := &domain.ConversionEvent{
		Timestamp: start,
		Duration:  c.now().Sub(start),
		Nodes:     nodes,
		Edges:     edges,
		Cached:    cached,
	}
	c.logger.DebugContext(ctx, "Graph converted", "nodes", nodes, "edges", edges, "cached", cached, "duration", ev.Duration)
	if c.hooks.OnConverted != nil {
		c.hooks.OnConverted(ctx, ev)
	}
}

func (c *Converter) rejected(ctx context.Context, start time.Time, err error, cached bool) {
	ev := &domain.ConversionEvent{
		Timestamp: start,
		Duration:  c.now().Sub(start),
		Cached:    cached,
		Kind:      kindOf(err),
	}
	c.logger.DebugContext(ctx, "Graph rejected", "kind", ev.Kind, "cached", cached)
	if c.hooks.OnRejected != nil {
		c.hooks.OnRejected(ctx, ev)
	}
}

func kindOf(err error) domain.ErrorKind {
	kind, _ := domain.KindOf(err)
	return kind
}
