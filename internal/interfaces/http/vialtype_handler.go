package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/usecase"
)

// VialTypeHandler maneja formatos de envase y su BOM de empaque.
type VialTypeHandler struct {
	uc *usecase.VialTypeUseCase
}

// NewVialTypeHandler construye el handler de formatos de envase.
func NewVialTypeHandler(uc *usecase.VialTypeUseCase) *VialTypeHandler {
	return &VialTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear formato de envase
// @Tags         vial-types
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVialTypeRequest  true  "formato"
// @Success      201   {object}  dto.VialTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/vial-types [post]
func (h *VialTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVialTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener formato de envase
// @Tags         vial-types
// @Produce      json
// @Param        id  path  string  true  "ID del formato"
// @Success      200  {object}  dto.VialTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/vial-types/{id} [get]
func (h *VialTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "formato de envase no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar formatos de envase
// @Tags         vial-types
// @Produce      json
// @Success      200  {array}  dto.VialTypeResponse
// @Security     BearerAuth
// @Router       /api/vial-types [get]
func (h *VialTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ReplaceBOM godoc
// @Summary      Reemplazar BOM de empaque del formato
// @Description  Cada línea lleva application_type (per_unit, per_pack, per_box).
// @Tags         vial-types
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del formato"
// @Param        body  body  dto.ReplaceBOMRequest  true  "líneas del BOM de empaque"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/vial-types/{id}/materials [put]
func (h *VialTypeHandler) ReplaceBOM(c *fiber.Ctx) error {
	var in dto.ReplaceBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ReplaceBOM(c.Params("id"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListBOM godoc
// @Summary      BOM de empaque del formato
// @Tags         vial-types
// @Produce      json
// @Param        id  path  string  true  "ID del formato"
// @Success      200  {array}  dto.BOMLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/vial-types/{id}/materials [get]
func (h *VialTypeHandler) ListBOM(c *fiber.Ctx) error {
	out, err := h.uc.ListBOM(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
