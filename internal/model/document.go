package model

import "time"

// Extraction status values for a stored document.
const (
	DocumentStatusPending   = "pending"
	DocumentStatusExtracted = "extracted"
	DocumentStatusFailed    = "failed"
)

// Document represents a stored order sheet in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	ContentHash string    `json:"content_hash"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
