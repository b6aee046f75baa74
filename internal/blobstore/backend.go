// Package blobstore holds the durable key-value contract behind persisted
// visitor state, with in-memory, Redis and SQL implementations.
package blobstore

import "context"

// Backend stores one opaque blob per (scope, name). Scope is the visitor id and
// name the store name (cart, wishlist, ...).
type Backend interface {
	// Get returns the blob and whether it exists. A missing key is not an error.
	Get(ctx context.Context, scope, name string) ([]byte, bool, error)
	Set(ctx context.Context, scope, name string, blob []byte) error
}
