package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/shipping"
)

// ShipmentHandler maneja envíos, cajas, tarifas y el packing slip.
type ShipmentHandler struct {
	uc *shipping.ShipmentUseCase
}

// NewShipmentHandler construye el handler de envíos.
func NewShipmentHandler(uc *shipping.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear envío para un lote
// @Description  Solo lotes in_progress o partially_shipped admiten envíos nuevos.
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "envío"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener envío
// @Tags         shipments
// @Produce      json
// @Param        id  path  string  true  "ID del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "envío no encontrado")
	}
	return c.JSON(out)
}

// ListByBatch godoc
// @Summary      Listar envíos de un lote
// @Tags         shipments
// @Produce      json
// @Param        batch_id  query  string  true  "ID del lote"
// @Success      200  {array}  dto.ShipmentResponse
// @Security     BearerAuth
// @Router       /api/shipments [get]
func (h *ShipmentHandler) ListByBatch(c *fiber.Ctx) error {
	batchID := c.Query("batch_id")
	if batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id es requerido"})
	}
	out, err := h.uc.ListByBatch(c.Context(), batchID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar envío (estado manual, carrier, tracking)
// @Description  El estado del lote se recalcula tras cada cambio de estado.
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del envío"
// @Param        body  body  dto.UpdateShipmentRequest  true  "campos a modificar"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "envío no encontrado")
	}
	return c.JSON(out)
}

// AddBox godoc
// @Summary      Agregar caja al envío
// @Description  Recalcula las unidades despachadas del lote y su estado.
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del envío"
// @Param        body  body  dto.AddBoxRequest  true  "caja"
// @Success      201   {object}  dto.BoxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id}/boxes [post]
func (h *ShipmentHandler) AddBox(c *fiber.Ctx) error {
	var in dto.AddBoxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddBox(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RestoreBoxMaterials godoc
// @Summary      Devolver al stock los materiales per_box del envío
// @Tags         shipments
// @Produce      json
// @Param        id  path  string  true  "ID del envío"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id}/restore-box-materials [post]
func (h *ShipmentHandler) RestoreBoxMaterials(c *fiber.Ctx) error {
	if err := h.uc.RestoreBoxMaterials(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Rates godoc
// @Summary      Cotizar tarifas de transporte
// @Tags         shipments
// @Produce      json
// @Param        weight_lb  query  string  true  "peso total en libras"
// @Param        dest_zip   query  string  true  "código postal destino"
// @Success      200  {array}  dto.RateQuoteDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/rates [get]
func (h *ShipmentHandler) Rates(c *fiber.Ctx) error {
	var in dto.RateQuoteRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	if in.DestZip == "" || !in.WeightLb.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "weight_lb y dest_zip son requeridos"})
	}
	out, err := h.uc.RateQuotes(c.Context(), in.WeightLb, in.DestZip)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PackingSlip godoc
// @Summary      Descargar packing slip del envío en PDF
// @Tags         shipments
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del envío"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id}/packing-slip [get]
func (h *ShipmentHandler) PackingSlip(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.PackingSlip(c.Context(), id)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="packing-slip-%s.pdf"`, id))
	return c.Send(pdf)
}
