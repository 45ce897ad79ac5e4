package entity

import "time"

// MaterialCategory agrupa materias primas (activos, envases, etiquetas, empaque).
// Las materias primas nunca se eliminan; se deshabilitan vía su categoría o su flag Active.
type MaterialCategory struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
