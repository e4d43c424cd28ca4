package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"orderapi/internal/cache"
	"orderapi/internal/config"
	"orderapi/internal/convert"
	"orderapi/internal/extract"
	"orderapi/internal/logger"
	"orderapi/internal/model"
	"orderapi/internal/repository"
	"orderapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrTooLarge   = errors.New("document exceeds the upload size limit")
)

// ExtractionError reports that a stored document could not be turned into an
// order. The document itself was kept with a failed status.
type ExtractionError struct {
	DocumentID string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for document %s: %v", e.DocumentID, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IngestResult is what one upload produces: the stored document and, when
// extraction succeeded, the extracted order.
type IngestResult struct {
	Document *model.Document    `json:"document"`
	Order    *model.OrderRecord `json:"order,omitempty"`
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// IngestService defines the use cases for handling uploaded order sheets.
type IngestService interface {
	// Ingest stores the upload, converts it and extracts the order.
	// A document whose content cannot be extracted is kept with a failed
	// status and an *ExtractionError is returned alongside the result.
	Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*IngestResult, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Delete removes a document by ID from both storage and repository.
	// Extracted orders referencing the document are removed by the schema.
	Delete(ctx context.Context, id string) error

	// Markdown returns the markdown rendering of the stored document.
	Markdown(ctx context.Context, id string) (string, error)

	// PresignDownload returns a time-limited URL for the original upload.
	PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error)
}

// ingestService is the concrete implementation of IngestService.
type ingestService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	orders   repository.OrderRepository
	cache    cache.ConversionCache
	builder  *extract.Builder
	maxBytes int64
}

// NewIngestService constructs a new IngestService. conv may be nil, in which
// case every document is converted on demand.
func NewIngestService(
	store storage.Storage,
	docs repository.DocumentRepository,
	orders repository.OrderRepository,
	conv cache.ConversionCache,
	cfg config.ExtractConfig,
) IngestService {
	return &ingestService{
		store:    store,
		docs:     docs,
		orders:   orders,
		cache:    conv,
		builder:  extract.NewBuilder(),
		maxBytes: cfg.MaxUploadBytes(),
	}
}

func (s *ingestService) Ingest(ctx context.Context, r io.Reader, originalFilename string, contentType string) (*IngestResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Reject oversized uploads before anything touches storage.
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	converter, err := convert.ForDocument(contentType, originalFilename)
	if err != nil {
		return nil, err
	}

	contentHash := cache.HashBytes(data)

	// Generate filename using UUID + extension
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("orders", genName))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"content-hash":      contentHash,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		ContentHash: contentHash,
		Status:      model.DocumentStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	res, err := s.convertCached(ctx, contentHash, converter, data)
	if err != nil {
		return s.failExtraction(ctx, stored, err)
	}

	order, err := s.builder.Build(&res.Content)
	if err != nil {
		return s.failExtraction(ctx, stored, err)
	}

	rec, err := s.orders.Create(ctx, &model.OrderRecord{
		ID:         uuid.New().String(),
		DocumentID: stored.ID,
		ShipmentID: order.Header.ShipmentID,
		Order:      *order,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.docs.UpdateStatus(ctx, stored.ID, model.DocumentStatusExtracted); err != nil {
		return nil, fmt.Errorf("update document status: %w", err)
	}
	stored.Status = model.DocumentStatusExtracted

	return &IngestResult{Document: stored, Order: rec}, nil
}

// failExtraction marks the document failed and wraps the cause. The stored
// document survives so the upload can be inspected and retried.
func (s *ingestService) failExtraction(ctx context.Context, doc *model.Document, cause error) (*IngestResult, error) {
	if err := s.docs.UpdateStatus(ctx, doc.ID, model.DocumentStatusFailed); err != nil {
		logger.Error().Err(err).Str("document_id", doc.ID).Msg("mark_document_failed")
	}
	doc.Status = model.DocumentStatusFailed
	return &IngestResult{Document: doc}, &ExtractionError{DocumentID: doc.ID, Err: cause}
}

// convertCached converts through the cache when one is configured. Cache
// failures are logged and treated as misses; responses never depend on redis.
func (s *ingestService) convertCached(ctx context.Context, contentHash string, converter convert.Converter, data []byte) (*convert.Result, error) {
	if s.cache != nil {
		res, err := s.cache.Get(ctx, contentHash)
		if err != nil {
			logger.Warn().Err(err).Str("content_hash", contentHash).Msg("conversion_cache_get")
		} else if res != nil {
			return res, nil
		}
	}

	res, err := converter.Convert(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, contentHash, res); err != nil {
			logger.Warn().Err(err).Str("content_hash", contentHash).Msg("conversion_cache_set")
		}
	}
	return res, nil
}

// List returns paginated documents without exposing repository types.
func (s *ingestService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *ingestService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes a document from storage, then deletes its record.
func (s *ingestService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.docs.Delete(ctx, id)
}

// Markdown fetches the original upload and returns its markdown rendering,
// reusing the conversion cache keyed by content hash.
func (s *ingestService) Markdown(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	converter, err := convert.ForDocument(doc.ContentType, doc.Filename)
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if res, err := s.cache.Get(ctx, doc.ContentHash); err == nil && res != nil {
			return res.Markdown, nil
		}
	}

	obj, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("fetch from storage: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("read from storage: %w", err)
	}

	res, err := s.convertCached(ctx, doc.ContentHash, converter, data)
	if err != nil {
		return "", err
	}
	return res.Markdown, nil
}

// PresignDownload returns a time-limited URL for the original upload.
func (s *ingestService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, expiry)
}
