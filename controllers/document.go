package controllers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/models"
	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/utils"
)

// DocumentController exposes the document registry over HTTP. Uploads arrive
// as multipart forms; downloads stream the stored bytes back with the MIME
// type derived from the display name.
type DocumentController struct {
	documents *services.DocumentService
}

func NewDocumentController(documents *services.DocumentService) *DocumentController {
	return &DocumentController{documents: documents}
}

// GetAllDocuments godoc
// @Summary Get all documents
// @Tags documentos
// @Produce json
// @Success 200 {array} models.Document
// @Failure 500 {object} utils.ErrorResponse
// @Router /documentos [get]
func (dc *DocumentController) GetAllDocuments(c *fiber.Ctx) error {
	documents, err := dc.documents.List()
	if err != nil {
		return respondError(c, "Failed to fetch documents", err)
	}
	return c.JSON(documents)
}

// GetDocument godoc
// @Summary Get a document by ID
// @Tags documentos
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} models.Document
// @Failure 404 {object} utils.ErrorResponse
// @Router /documentos/{id} [get]
func (dc *DocumentController) GetDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid document ID", err))
	}
	document, err := dc.documents.Get(uint(id))
	if err != nil {
		return respondError(c, "Document not found", err)
	}
	return c.JSON(document)
}

// GetDocumentsByTaxpayer godoc
// @Summary Get all documents of a taxpayer
// @Tags documentos
// @Produce json
// @Param id path int true "Taxpayer ID"
// @Success 200 {array} models.Document
// @Failure 500 {object} utils.ErrorResponse
// @Router /documentos/contribuyente/{id} [get]
func (dc *DocumentController) GetDocumentsByTaxpayer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid taxpayer ID", err))
	}
	documents, err := dc.documents.ListByTaxpayer(uint(id))
	if err != nil {
		return respondError(c, "Failed to fetch documents", err)
	}
	return c.JSON(documents)
}

// CreateDocument godoc
// @Summary Upload a new document
// @Tags documentos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param taxpayer_id formData int true "Taxpayer ID"
// @Param type formData string false "Document type"
// @Param description formData string false "Description"
// @Success 201 {object} models.Document
// @Failure 400 {object} utils.ErrorResponse
// @Router /documentos [post]
func (dc *DocumentController) CreateDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("No file provided", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to open uploaded file", err))
	}
	defer file.Close()
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.E("Failed to read uploaded file", err))
	}

	input := services.DocumentInput{
		TaxpayerID:  uint(formInt(c, "taxpayer_id")),
		Type:        models.DocumentType(c.FormValue("type")),
		Description: c.FormValue("description"),
	}

	document, err := dc.documents.Create(input, fileBytes, fileHeader.Filename)
	if err != nil {
		return respondError(c, "Failed to create document", err)
	}
	return c.Status(fiber.StatusCreated).JSON(document)
}

// DeleteDocument godoc
// @Summary Delete a document and its stored file
// @Tags documentos
// @Param id path int true "Document ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /documentos/{id} [delete]
func (dc *DocumentController) DeleteDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid document ID", err))
	}
	if err := dc.documents.Delete(uint(id)); err != nil {
		return respondError(c, "Failed to delete document", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadDocument godoc
// @Summary Download a document's file
// @Tags documentos
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.ErrorResponse
// @Router /documentos/{id}/download [get]
func (dc *DocumentController) DownloadDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid document ID", err))
	}
	data, contentType, name, err := dc.documents.Download(uint(id))
	if err != nil {
		return respondError(c, "Failed to download document", err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

func formInt(c *fiber.Ctx, key string) int {
	v, _ := strconv.Atoi(c.FormValue(key))
	return v
}
