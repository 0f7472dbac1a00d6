package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/usecase"
)

// CompanyHandler handles tenant reads and per-company settings.
type CompanyHandler struct {
	companies *usecase.CompanyUseCase
	settings  *usecase.SettingsUseCase
}

// NewCompanyHandler builds the handler.
func NewCompanyHandler(companies *usecase.CompanyUseCase, settings *usecase.SettingsUseCase) *CompanyHandler {
	return &CompanyHandler{companies: companies, settings: settings}
}

// List GET /api/v1/companies
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.companies.List(page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/v1/companies/:id
// Tenant-bound callers can only read their own company.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !IsSuperAdmin(c) && GetCompanyID(c) != id {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	}
	company, err := h.companies.GetByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(company)
}

// GetSettings GET /api/v1/settings
func (h *CompanyHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get(GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettings PUT /api/v1/settings
func (h *CompanyHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	settings, err := h.settings.Update(GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(settings)
}
