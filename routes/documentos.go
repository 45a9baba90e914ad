package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/controllers"
)

// SetupDocumentRoutes configures all document registry routes.
func SetupDocumentRoutes(app *fiber.App, documents *controllers.DocumentController) {
	group := app.Group("/documentos")
	group.Get("/", documents.GetAllDocuments)
	group.Get("/contribuyente/:id", documents.GetDocumentsByTaxpayer)
	group.Get("/:id", documents.GetDocument)
	group.Get("/:id/download", documents.DownloadDocument)
	group.Post("/", documents.CreateDocument)
	group.Delete("/:id", documents.DeleteDocument)
}
