package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// LowStockUseCase genera el reporte de materias primas por debajo de su
// mínimo, con cantidad sugerida de reposición (ideal = mínimo * 1.5).
type LowStockUseCase struct {
	materialRepo repository.RawMaterialRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(materialRepo repository.RawMaterialRepository) *LowStockUseCase {
	return &LowStockUseCase{materialRepo: materialRepo}
}

var idealFactor = decimal.NewFromFloat(1.5)

// Report devuelve las materias primas con CurrentStock < MinStockLevel.
func (uc *LowStockUseCase) Report(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	materials, err := uc.materialRepo.ListBelowMinimum()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockItemDTO, 0, len(materials))
	for _, m := range materials {
		ideal := m.MinStockLevel.Mul(idealFactor)
		suggested := ideal.Sub(m.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemDTO{
			MaterialID:        m.ID,
			Name:              m.Name,
			Unit:              m.Unit,
			CurrentStock:      m.CurrentStock,
			MinStockLevel:     m.MinStockLevel,
			SuggestedOrderQty: suggested,
			EstimatedCost:     suggested.Mul(m.CostPerUnit),
		})
	}
	return items, nil
}
