package production

import (
	"github.com/shopspring/decimal"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
)

// MaterialRequirement es el requerimiento total de una materia prima
// para producir un lote completo (cantidad por unidad × base de multiplicación).
type MaterialRequirement struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// RequirementsFor calcula el requerimiento total de cada línea del BOM de
// empaque para un lote (servicio de dominio, sin acceso a datos).
// Base de multiplicación según ApplicationType:
//   - per_unit: Quantity del lote (ya en unidades base)
//   - per_pack: PackQuantity del lote (0 si SaleType = individual)
//   - per_box:  boxCount; en el arranque de producción aún no hay cajas,
//     el caller pasa 0 y esas líneas se resuelven en cero (las consume la
//     restauración a nivel de envío)
//
// Las líneas cuyo requerimiento resulta cero se omiten.
func RequirementsFor(lines []entity.VialTypeMaterial, batch *entity.ProductionBatch, boxCount int) []MaterialRequirement {
	reqs := make([]MaterialRequirement, 0, len(lines))
	for _, line := range lines {
		base := multiplierBase(line.ApplicationType, batch, boxCount)
		qty := line.QuantityPerUnit.Mul(decimal.NewFromInt(int64(base)))
		if qty.IsZero() {
			continue
		}
		reqs = append(reqs, MaterialRequirement{MaterialID: line.RawMaterialID, Quantity: qty})
	}
	return reqs
}

// ProductRequirementsFor calcula el requerimiento del BOM de principios
// activos (tabla independiente del BOM de empaque; no se unen).
func ProductRequirementsFor(lines []entity.ProductMaterial, units int) []MaterialRequirement {
	reqs := make([]MaterialRequirement, 0, len(lines))
	for _, line := range lines {
		qty := line.QuantityPerUnit.Mul(decimal.NewFromInt(int64(units)))
		if qty.IsZero() {
			continue
		}
		reqs = append(reqs, MaterialRequirement{MaterialID: line.MaterialID, Quantity: qty})
	}
	return reqs
}

func multiplierBase(applicationType string, batch *entity.ProductionBatch, boxCount int) int {
	switch applicationType {
	case entity.ApplicationPerUnit:
		return batch.Quantity
	case entity.ApplicationPerPack:
		return batch.PackQuantity
	case entity.ApplicationPerBox:
		return boxCount
	}
	return 0
}

// BaseUnits normaliza la cantidad de un lote a unidades base (botellas).
// Con SaleType = pack la cantidad ingresada son packs y se expande por
// BottlesPerPack del formato; con individual ya viene en unidades base.
func BaseUnits(saleType string, quantity, bottlesPerPack int) int {
	if saleType == entity.SaleTypePack && bottlesPerPack > 0 {
		return quantity * bottlesPerPack
	}
	return quantity
}
