package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"orderapi/internal/convert"
	"orderapi/internal/service"
)

// extractionFailedPayload reports an upload whose document was stored but whose
// content could not be extracted into an order.
type extractionFailedPayload struct {
	RequestID string                `json:"request_id"`
	Error     errorEnvelope         `json:"error"`
	Result    *service.IngestResult `json:"result"`
}

// HealthCheck reports readiness. It checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListDocuments returns stored documents with limit & offset.
func ListDocuments(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagination(c)
		if !ok {
			return nil
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument ingests one order sheet (multipart/form-data, field name: file).
// The stored document and extracted order are returned on success. When
// extraction fails the document is kept and a 422 carries both the error and
// the stored document.
func UploadDocument(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Ingest(c.UserContext(), f, fh.Filename, ct)
		if err != nil {
			var extErr *service.ExtractionError
			switch {
			case errors.Is(err, service.ErrTooLarge):
				return writeError(c, fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "document exceeds the upload size limit")
			case errors.Is(err, convert.ErrUnsupportedType):
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "unsupported document type")
			case errors.As(err, &extErr):
				return c.Status(fiber.StatusUnprocessableEntity).JSON(extractionFailedPayload{
					RequestID: requestIDFromCtx(c),
					Error: errorEnvelope{
						Code:    "EXTRACTION_FAILED",
						Message: "document stored but no order could be extracted",
					},
					Result: res,
				})
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GetDocument returns a document by ID.
func GetDocument(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document from storage and the database. Orders
// extracted from it are removed by the schema.
func DeleteDocument(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentMarkdown returns the markdown rendering of a stored document.
func DocumentMarkdown(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		md, err := svc.Markdown(c.UserContext(), id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			case errors.Is(err, convert.ErrUnsupportedType):
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE", "unsupported document type")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return c.SendString(md)
	}
}

// downloadExpiry is how long presigned download URLs stay valid.
const downloadExpiry = 15 * time.Minute

// DocumentDownloadURL returns a time-limited URL for the original upload.
func DocumentDownloadURL(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return nil
		}
		u, err := svc.PresignDownload(c.UserContext(), id, downloadExpiry)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{
			"url":        u,
			"expires_in": int(downloadExpiry.Seconds()),
		})
	}
}

// pathID validates the :id path parameter as a UUID. On failure the error
// response has already been written and ok is false.
func pathID(c *fiber.Ctx) (id string, ok bool) {
	id = c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return "", false
	}
	return id, true
}

// pagination reads limit/offset query parameters with defaults. On failure the
// error response has already been written and ok is false.
func pagination(c *fiber.Ctx) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}
