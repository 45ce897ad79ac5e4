package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/production"
)

// BatchHandler maneja el ciclo de vida de lotes de producción.
type BatchHandler struct {
	uc       *production.BatchUseCase
	workflow *production.StartProductionUseCase
}

// NewBatchHandler construye el handler de lotes.
func NewBatchHandler(uc *production.BatchUseCase, workflow *production.StartProductionUseCase) *BatchHandler {
	return &BatchHandler{uc: uc, workflow: workflow}
}

// Create godoc
// @Summary      Crear lote de producción
// @Description  El lote nace en pending; no descuenta materiales hasta iniciarse.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "lote"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
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
// @Summary      Obtener lote
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar lote (solo no terminales)
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchRequest  true  "campos editables"
// @Success      200   {object}  dto.BatchResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "lote no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Produce      json
// @Param        status  query  string  false  "filtro por estado"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "offset"
// @Success      200  {object}  dto.BatchListResponse
// @Security     BearerAuth
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar producción del lote
// @Description  Descuenta todos los materiales requeridos y pasa el lote a
// @Description  in_progress en una sola transacción; si falta stock de
// @Description  cualquier material responde 409 sin descontar nada.
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id}/start [post]
func (h *BatchHandler) Start(c *fiber.Ctx) error {
	if err := h.workflow.StartProduction(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel godoc
// @Summary      Cancelar lote
// @Description  Un lote in_progress devuelve sus materiales al stock; uno
// @Description  pending se cancela sin movimientos.
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id}/cancel [post]
func (h *BatchHandler) Cancel(c *fiber.Ctx) error {
	if err := h.workflow.CancelBatch(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreMaterials godoc
// @Summary      Devolver los materiales del lote al stock
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/batches/{id}/restore-materials [post]
func (h *BatchHandler) RestoreMaterials(c *fiber.Ctx) error {
	if err := h.workflow.RestoreMaterials(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
