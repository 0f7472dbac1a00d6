package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/loads"
)

// LoadHandler handles load lifecycle requests.
type LoadHandler struct {
	uc *loads.LoadUseCase
}

// NewLoadHandler builds the handler.
func NewLoadHandler(uc *loads.LoadUseCase) *LoadHandler {
	return &LoadHandler{uc: uc}
}

// Create POST /api/v1/loads
func (h *LoadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	load, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(load)
}

// GetByID GET /api/v1/loads/:id
func (h *LoadHandler) GetByID(c *fiber.Ctx) error {
	load, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(load)
}

// List GET /api/v1/loads?status=pending
func (h *LoadHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(GetCompanyID(c), c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Assign POST /api/v1/loads/:id/assign
func (h *LoadHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignLoadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	load, err := h.uc.Assign(GetCompanyID(c), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(load)
}

// Unassign POST /api/v1/loads/:id/unassign
func (h *LoadHandler) Unassign(c *fiber.Ctx) error {
	load, err := h.uc.Unassign(GetCompanyID(c), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(load)
}

// UpdateStatus PATCH /api/v1/loads/:id/status
func (h *LoadHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLoadStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	load, err := h.uc.UpdateStatus(GetCompanyID(c), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(load)
}

// Tracking GET /api/v1/loads/:id/tracking
func (h *LoadHandler) Tracking(c *fiber.Ctx) error {
	trail, err := h.uc.Tracking(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(trail)
}
