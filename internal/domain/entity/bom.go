package entity

import "github.com/shopspring/decimal"

// Bases de multiplicación para materiales de empaque (VialTypeMaterial).
const (
	ApplicationPerUnit = "per_unit" // por unidad base (botella)
	ApplicationPerPack = "per_pack" // por pack de venta
	ApplicationPerBox  = "per_box"  // por caja de envío (solo resoluble con cajas creadas)
)

// ProductMaterial es una línea del BOM de principios activos:
// cuánta materia prima consume una unidad del producto.
// Tabla independiente de VialTypeMaterial; nunca se unen antes de descontar.
type ProductMaterial struct {
	ProductID       string
	MaterialID      string
	QuantityPerUnit decimal.Decimal
}

// VialTypeMaterial es una línea del BOM de empaque: cuánta materia prima
// consume el formato de envase, escalada según ApplicationType.
type VialTypeMaterial struct {
	VialTypeID      string
	RawMaterialID   string
	QuantityPerUnit decimal.Decimal
	ApplicationType string // per_unit, per_pack, per_box
}
