package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/fleet"
)

// DriverHandler handles driver requests.
type DriverHandler struct {
	uc *fleet.DriverUseCase
}

// NewDriverHandler builds the handler.
func NewDriverHandler(uc *fleet.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// Create POST /api/v1/drivers
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	driver, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(driver)
}

// GetByID GET /api/v1/drivers/:id
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	driver, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(driver)
}

// List GET /api/v1/drivers
func (h *DriverHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/v1/drivers/:id
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDriverRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	driver, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(driver)
}

// SetActive PATCH /api/v1/drivers/:id/active
func (h *DriverHandler) SetActive(c *fiber.Ctx) error {
	var in struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	driver, err := h.uc.SetActive(GetCompanyID(c), c.Params("id"), in.Active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(driver)
}

// Delete DELETE /api/v1/drivers/:id
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VehicleHandler handles vehicle requests.
type VehicleHandler struct {
	vehicles    *fleet.VehicleUseCase
	assignments *fleet.AssignmentUseCase
}

// NewVehicleHandler builds the handler.
func NewVehicleHandler(vehicles *fleet.VehicleUseCase, assignments *fleet.AssignmentUseCase) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, assignments: assignments}
}

// Create POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vehicle, err := h.vehicles.Create(GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// GetByID GET /api/v1/vehicles/:id
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(vehicle)
}

// List GET /api/v1/vehicles
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.vehicles.List(GetCompanyID(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// UpdateStatus PATCH /api/v1/vehicles/:id/status
func (h *VehicleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateVehicleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	vehicle, err := h.vehicles.UpdateStatus(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(vehicle)
}

// Assign POST /api/v1/assignments
func (h *VehicleHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	assignment, err := h.assignments.Assign(GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// Unassign DELETE /api/v1/assignments/driver/:driverId
func (h *VehicleHandler) Unassign(c *fiber.Ctx) error {
	if err := h.assignments.Unassign(GetCompanyID(c), c.Params("driverId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignmentHistory GET /api/v1/assignments/driver/:driverId
func (h *VehicleHandler) AssignmentHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.assignments.History(GetCompanyID(c), c.Params("driverId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
