package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/onboarding"
)

// OnboardingHandler handles fleet applications. Submission is public; review
// is platform-only.
type OnboardingHandler struct {
	uc *onboarding.OnboardingUseCase
}

// NewOnboardingHandler builds the handler.
func NewOnboardingHandler(uc *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{uc: uc}
}

// Create POST /api/v1/applications (public)
func (h *OnboardingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	app, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetByID GET /api/v1/applications/:id
func (h *OnboardingHandler) GetByID(c *fiber.Ctx) error {
	app, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(app)
}

// List GET /api/v1/applications?status=pending
func (h *OnboardingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.Query("status"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Approve POST /api/v1/applications/:id/approve
func (h *OnboardingHandler) Approve(c *fiber.Ctx) error {
	app, err := h.uc.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(app)
}

// Reject POST /api/v1/applications/:id/reject
func (h *OnboardingHandler) Reject(c *fiber.Ctx) error {
	app, err := h.uc.Reject(c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(app)
}
