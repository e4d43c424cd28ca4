package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"orderapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business logic lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, ingestSvc service.IngestService, orderSvc service.OrderService) {
	// Health endpoints: /health checks DB connectivity, /healthz is liveness only
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Documents: uploaded order sheets and their renderings
	app.Get("/documents", ListDocuments(ingestSvc))
	app.Post("/documents", UploadDocument(ingestSvc))
	app.Get("/documents/:id", GetDocument(ingestSvc))
	app.Delete("/documents/:id", DeleteDocument(ingestSvc))
	app.Get("/documents/:id/markdown", DocumentMarkdown(ingestSvc))
	app.Get("/documents/:id/download", DocumentDownloadURL(ingestSvc))
	app.Get("/documents/:id/order", OrderByDocument(orderSvc))

	// Orders: the structured data extracted from documents.
	// The static export route must precede the :id routes.
	app.Get("/orders", ListOrders(orderSvc))
	app.Get("/orders/export", ExportOrders(orderSvc))
	app.Get("/orders/:id", GetOrder(orderSvc))
	app.Delete("/orders/:id", DeleteOrder(orderSvc))
	app.Get("/orders/:id/preview", OrderPreview(orderSvc))
}
