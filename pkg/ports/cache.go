package ports

import (
	"context"
	"errors"

	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// ErrCacheMiss is returned by ResultCache.Get when no entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// CachedResult is the memoized outcome of converting one document.
// Exactly one of Output or Kind is set.
type CachedResult struct {
	// Output is the encoded graph of a successful conversion.
	Output []byte `json:"output,omitempty"`
	// Kind is the validation error kind of a rejected document.
	Kind  domain.ErrorKind `json:"kind,omitempty"`
	Nodes int              `json:"nodes,omitempty"`
	Edges int              `json:"edges,omitempty"`
}

// ResultCache memoizes conversion results by content key.
// Conversion is deterministic, so entries never need invalidation beyond expiry.
type ResultCache interface {
	// Get returns ErrCacheMiss if the key is unknown or expired.
	Get(ctx context.Context, key string) (CachedResult, error)
	Set(ctx context.Context, key string, result CachedResult) error
}
