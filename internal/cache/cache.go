package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"orderapi/internal/convert"
)

// Package cache holds the conversion result cache. Converting a document is
// the expensive step of ingestion, and the same sheet is routinely uploaded
// more than once; results are keyed by the SHA-256 of the raw bytes so
// identical uploads convert only once.
//
// The cache is advisory: a miss or a backend failure always falls back to a
// direct conversion and never fails the request.

// ConversionCache stores conversion results keyed by content hash.
type ConversionCache interface {
	// Get returns the cached result for the hash, or (nil, nil) on a miss.
	Get(ctx context.Context, contentHash string) (*convert.Result, error)
	// Set stores the result under the hash with the configured TTL.
	Set(ctx context.Context, contentHash string, res *convert.Result) error
}

// HashBytes returns the hex SHA-256 of the document bytes, the cache key and
// the content_hash persisted with the document row.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
