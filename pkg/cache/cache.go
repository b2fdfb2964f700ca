// Package cache provides pluggable caching for the org chart pipeline.
//
// Three backends share one interface: an in-process file cache for CLI
// usage, a Redis cache for the HTTP server, and a null cache that disables
// caching entirely. Keys are derived from content hashes, so identical
// inputs hit the same entries regardless of file names or request order.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Forests and layouts are cheap to rebuild, so
// they expire sooner than rendered artifacts.
const (
	TTLForest   = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the inputs that change a layout result for the same
// forest. Every field participates in the key hash.
type LayoutKeyOpts struct {
	Kind       string `json:"kind"`
	Order      string `json:"order"`
	Unified    bool   `json:"unified"`
	MaxDepth   int    `json:"max_depth"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

// ArtifactKeyOpts are the inputs that change a rendered artifact for the
// same layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Theme  string `json:"theme"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Keyer derives cache keys for each pipeline stage from content hashes.
type Keyer interface {
	// ForestKey keys a committed forest by the hash of its source records.
	ForestKey(dataHash string) string

	// LayoutKey keys a layout result by forest hash plus layout options.
	LayoutKey(forestHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash plus render
	// options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: stage prefix plus SHA-256 over
// the hash and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// ForestKey returns "forest:<hash(dataHash)>".
func (k *DefaultKeyer) ForestKey(dataHash string) string {
	return hashKey("forest", dataHash)
}

// LayoutKey returns "layout:<hash(forestHash, opts)>".
func (k *DefaultKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", forestHash, opts)
}

// ArtifactKey returns "artifact:<hash(layoutHash, opts)>".
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer prefixes every key from an inner keyer, isolating entries per
// dataset (or per tenant on the server).
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps a keyer with a key prefix. A nil inner keyer
// defaults to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ForestKey prefixes the inner forest key.
func (k *ScopedKeyer) ForestKey(dataHash string) string {
	return k.prefix + k.inner.ForestKey(dataHash)
}

// LayoutKey prefixes the inner layout key.
func (k *ScopedKeyer) LayoutKey(forestHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(forestHash, opts)
}

// ArtifactKey prefixes the inner artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

var (
	_ Keyer = (*DefaultKeyer)(nil)
	_ Keyer = (*ScopedKeyer)(nil)
)
