package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/documents"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
)

// DocumentHandler handles document upload, metadata and downloads.
type DocumentHandler struct {
	uc *documents.DocumentUseCase
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(uc *documents.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload POST /api/v1/documents (multipart/form-data: file, type, plus
// optional load_id, invoice_id, quote_id)
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cannot read file"})
	}
	defer file.Close()

	doc, err := h.uc.Upload(c.Context(), GetCompanyID(c), GetUserID(c), documents.UploadInput{
		Type:      c.FormValue("type"),
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes: fileHeader.Size,
		LoadID:    c.FormValue("load_id"),
		InvoiceID: c.FormValue("invoice_id"),
		QuoteID:   c.FormValue("quote_id"),
		Body:      file,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetByID GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

// List GET /api/v1/documents?load_id=...
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(GetCompanyID(c), c.Query("load_id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// SignedURL POST /api/v1/documents/:id/url?ttl=300
func (h *DocumentHandler) SignedURL(c *fiber.Ctx) error {
	ttl, _ := strconv.Atoi(c.Query("ttl", "300"))
	url, err := h.uc.SignedURL(GetCompanyID(c), c.Params("id"), ttl)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(url)
}

// Download GET /api/v1/documents/download?token=...
// Unauthenticated: the signed token is the credential.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token required"})
	}
	body, doc, err := h.uc.Download(c.Context(), token)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	return c.SendStream(body)
}

// Delete DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
