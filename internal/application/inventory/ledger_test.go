package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// fakeMaterialRepo implementación en memoria del puerto de materias primas.
type fakeMaterialRepo struct {
	materials map[string]*entity.RawMaterial
}

func newFakeMaterialRepo(materials ...*entity.RawMaterial) *fakeMaterialRepo {
	r := &fakeMaterialRepo{materials: make(map[string]*entity.RawMaterial)}
	for _, m := range materials {
		clone := *m
		r.materials[m.ID] = &clone
	}
	return r
}

func (r *fakeMaterialRepo) Create(m *entity.RawMaterial) error {
	clone := *m
	r.materials[m.ID] = &clone
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.RawMaterial, error) {
	return r.GetByID(id)
}

func (r *fakeMaterialRepo) Update(m *entity.RawMaterial) error {
	clone := *m
	r.materials[m.ID] = &clone
	return nil
}

func (r *fakeMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *fakeMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) { return nil, nil }

func (r *fakeMaterialRepo) ListBelowMinimum() ([]*entity.RawMaterial, error) {
	var out []*entity.RawMaterial
	for _, m := range r.materials {
		if m.BelowMinimum() {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeMaterialRepo) snapshot() map[string]decimal.Decimal {
	snap := make(map[string]decimal.Decimal, len(r.materials))
	for id, m := range r.materials {
		snap[id] = m.CurrentStock
	}
	return snap
}

func (r *fakeMaterialRepo) restore(snap map[string]decimal.Decimal) {
	for id, stock := range snap {
		if m, ok := r.materials[id]; ok {
			m.CurrentStock = stock
		}
	}
}

// fakeMovementRepo acumula movimientos en memoria.
type fakeMovementRepo struct {
	movements []*entity.MaterialMovement
}

func (r *fakeMovementRepo) Create(m *entity.MaterialMovement) error {
	clone := *m
	r.movements = append(r.movements, &clone)
	return nil
}

func (r *fakeMovementRepo) ListByMaterial(materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	var out []*entity.MaterialMovement
	for _, m := range r.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(reference string) ([]*entity.MaterialMovement, error) {
	var out []*entity.MaterialMovement
	for _, m := range r.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner emula commit/rollback: si fn falla, restaura el stock y descarta
// los movimientos escritos durante la "transacción".
type fakeTxRunner struct {
	materialRepo *fakeMaterialRepo
	movRepo      *fakeMovementRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
) error) error {
	snap := t.materialRepo.snapshot()
	movCount := len(t.movRepo.movements)
	if err := fn(t.materialRepo, t.movRepo); err != nil {
		t.materialRepo.restore(snap)
		t.movRepo.movements = t.movRepo.movements[:movCount]
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestAdjustStock_EntradaSumaYRegistraMovimiento(t *testing.T) {
	materialRepo := newFakeMaterialRepo(&entity.RawMaterial{ID: "mat-1", Name: "Etiqueta", CurrentStock: dec("100")})
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	newStock, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		MaterialID: "mat-1",
		Quantity:   dec("25.5"),
		Direction:  DirectionAdd,
		Reference:  "compra-7",
		UserID:     "user-1",
	})
	require.NoError(t, err)
	assert.True(t, newStock.Equal(dec("125.5")))

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, movRepo.movements[0].Type)
	assert.True(t, movRepo.movements[0].Quantity.Equal(dec("25.5")))
	assert.Equal(t, "compra-7", movRepo.movements[0].Reference)
}

func TestAdjustStock_SalidaDescuenta(t *testing.T) {
	materialRepo := newFakeMaterialRepo(&entity.RawMaterial{ID: "mat-1", CurrentStock: dec("100")})
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	newStock, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		MaterialID: "mat-1",
		Quantity:   dec("40"),
		Direction:  DirectionDeduct,
	})
	require.NoError(t, err)
	assert.True(t, newStock.Equal(dec("60")))

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, movRepo.movements[0].Type)
	// las salidas quedan con cantidad negativa en el histórico
	assert.True(t, movRepo.movements[0].Quantity.Equal(dec("-40")))
}

func TestAdjustStock_StockNegativoFallaSinEscribir(t *testing.T) {
	materialRepo := newFakeMaterialRepo(&entity.RawMaterial{ID: "mat-1", CurrentStock: dec("30")})
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	_, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		MaterialID: "mat-1",
		Quantity:   dec("31"),
		Direction:  DirectionDeduct,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// el stock queda intacto y no hay movimiento registrado
	stock, err := uc.GetStock(context.Background(), "mat-1")
	require.NoError(t, err)
	assert.True(t, stock.Equal(dec("30")))
	assert.Empty(t, movRepo.movements)
}

func TestAdjustStock_DescuentoExactoACeroEsValido(t *testing.T) {
	materialRepo := newFakeMaterialRepo(&entity.RawMaterial{ID: "mat-1", CurrentStock: dec("30")})
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	newStock, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		MaterialID: "mat-1",
		Quantity:   dec("30"),
		Direction:  DirectionDeduct,
	})
	require.NoError(t, err)
	assert.True(t, newStock.IsZero())
}

func TestAdjustStock_EntradasValidadas(t *testing.T) {
	materialRepo := newFakeMaterialRepo(&entity.RawMaterial{ID: "mat-1", CurrentStock: dec("10")})
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	cases := []struct {
		name  string
		input AdjustStockInput
	}{
		{"cantidad cero", AdjustStockInput{MaterialID: "mat-1", Quantity: decimal.Zero, Direction: DirectionAdd}},
		{"cantidad negativa", AdjustStockInput{MaterialID: "mat-1", Quantity: dec("-5"), Direction: DirectionAdd}},
		{"dirección inválida", AdjustStockInput{MaterialID: "mat-1", Quantity: dec("5"), Direction: "remove"}},
		{"sin material", AdjustStockInput{Quantity: dec("5"), Direction: DirectionAdd}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AdjustStock(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjustStock_MaterialInexistente(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	movRepo := &fakeMovementRepo{}
	uc := NewLedgerUseCase(&fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo}, materialRepo)

	_, err := uc.AdjustStock(context.Background(), AdjustStockInput{
		MaterialID: "no-existe",
		Quantity:   dec("5"),
		Direction:  DirectionAdd,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
