package domain

import (
	"context"
	"time"
)

// ConversionEvent describes the outcome of one conversion or validation.
type ConversionEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	// Nodes and Edges are only set on success.
	Nodes  int  `json:"nodes,omitempty"`
	Edges  int  `json:"edges,omitempty"`
	Cached bool `json:"cached,omitempty"`
	// Kind is set when the document was rejected.
	Kind ErrorKind `json:"kind,omitempty"`
}

// ConversionHooks defines callbacks for converter observability.
type ConversionHooks struct {
	OnConverted func(context.Context, *ConversionEvent)
	OnRejected  func(context.Context, *ConversionEvent)
	// OnValidated fires for every Validate call, accepted or not.
	OnValidated func(context.Context, *ConversionEvent)
}
