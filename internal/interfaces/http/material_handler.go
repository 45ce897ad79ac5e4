package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/usecase"
)

// MaterialHandler maneja materias primas, categorías y el libro de materiales.
type MaterialHandler struct {
	uc       *usecase.MaterialUseCase
	ledger   *inventory.LedgerUseCase
	lowStock *inventory.LowStockUseCase
}

// NewMaterialHandler construye el handler de materias primas.
func NewMaterialHandler(uc *usecase.MaterialUseCase, ledger *inventory.LedgerUseCase, lowStock *inventory.LowStockUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, ledger: ledger, lowStock: lowStock}
}

// Create godoc
// @Summary      Crear materia prima
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "materia prima"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
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
// @Summary      Obtener materia prima
// @Tags         materials
// @Produce      json
// @Param        id  path  string  true  "ID de la materia prima"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "materia prima no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar materia prima
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la materia prima"
// @Param        body  body  dto.UpdateMaterialRequest  true  "campos a modificar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return notFound(c, "materia prima no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materias primas
// @Tags         materials
// @Produce      json
// @Param        limit   query  int  false  "límite"
// @Param        offset  query  int  false  "offset"
// @Success      200  {object}  dto.MaterialListResponse
// @Security     BearerAuth
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock vía el libro de materiales
// @Description  Un deduct que dejaría el stock negativo responde 409 sin escribir nada.
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la materia prima"
// @Param        body  body  dto.AdjustStockRequest  true  "cantidad, dirección y referencia"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/materials/{id}/adjust [post]
func (h *MaterialHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	materialID := c.Params("id")
	newStock, err := h.ledger.AdjustStock(c.Context(), inventory.AdjustStockInput{
		MaterialID: materialID,
		Quantity:   in.Quantity,
		Direction:  in.Direction,
		Reference:  in.Reference,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{MaterialID: materialID, NewStock: newStock})
}

// Movements godoc
// @Summary      Histórico de movimientos de una materia prima
// @Tags         materials
// @Produce      json
// @Param        id      path   string  true   "ID de la materia prima"
// @Param        limit   query  int     false  "límite"
// @Param        offset  query  int     false  "offset"
// @Success      200  {array}  dto.MovementResponse
// @Security     BearerAuth
// @Router       /api/materials/{id}/movements [get]
func (h *MaterialHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.Movements(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de materias primas bajo mínimo
// @Description  Incluye cantidad sugerida de reposición y costo estimado.
// @Tags         materials
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Security     BearerAuth
// @Router       /api/materials/low-stock [get]
func (h *MaterialHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.lowStock.Report(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría de materias primas
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/material-categories [post]
func (h *MaterialHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         materials
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Security     BearerAuth
// @Router       /api/material-categories [get]
func (h *MaterialHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// DisableCategory godoc
// @Summary      Desactivar categoría
// @Tags         materials
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/material-categories/{id} [delete]
func (h *MaterialHandler) DisableCategory(c *fiber.Ctx) error {
	if err := h.uc.DisableCategory(c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
