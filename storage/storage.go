// Package storage abstracts the two object stores the ingestion
// pipeline touches: the private upload bucket it reads from and the
// public game bucket it publishes to.
package storage

import (
	"context"

	"github.com/ryanshappa/GamePlay-sub000/content"
)

// ObjectSource reads uploaded archives and their metadata.
type ObjectSource interface {
	// Get returns the object's full content.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Head returns the object's user metadata with lower-cased keys.
	Head(ctx context.Context, bucket, key string) (map[string]string, error)
}

// ObjectSink writes publicly readable objects.
type ObjectSink interface {
	Put(ctx context.Context, bucket, key string, data []byte, h content.Headers) error
}
