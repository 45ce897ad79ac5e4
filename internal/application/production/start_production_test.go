package production

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/inventory"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

// --- fakes en memoria ---

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

func (r *fakeMaterialRepo) Create(m *entity.RawMaterial) error { return nil }

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

func (r *fakeMaterialRepo) Update(m *entity.RawMaterial) error { return nil }

func (r *fakeMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *fakeMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error)  { return nil, nil }
func (r *fakeMaterialRepo) ListBelowMinimum() ([]*entity.RawMaterial, error)       { return nil, nil }

func (r *fakeMaterialRepo) stock(id string) decimal.Decimal {
	return r.materials[id].CurrentStock
}

type fakeMovementRepo struct {
	movements []*entity.MaterialMovement
}

func (r *fakeMovementRepo) Create(m *entity.MaterialMovement) error {
	clone := *m
	r.movements = append(r.movements, &clone)
	return nil
}

func (r *fakeMovementRepo) ListByMaterial(string, int, int) ([]*entity.MaterialMovement, error) {
	return nil, nil
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

type fakeBatchRepo struct {
	batches map[string]*entity.ProductionBatch
}

func newFakeBatchRepo(batches ...*entity.ProductionBatch) *fakeBatchRepo {
	r := &fakeBatchRepo{batches: make(map[string]*entity.ProductionBatch)}
	for _, b := range batches {
		clone := *b
		r.batches[b.ID] = &clone
	}
	return r
}

func (r *fakeBatchRepo) Create(b *entity.ProductionBatch) error { return nil }

func (r *fakeBatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.ProductionBatch, error) {
	return r.GetByID(id)
}

func (r *fakeBatchRepo) Update(b *entity.ProductionBatch) error {
	clone := *b
	r.batches[b.ID] = &clone
	return nil
}

func (r *fakeBatchRepo) List(status string, limit, offset int) ([]*entity.ProductionBatch, error) {
	return nil, nil
}

type fakeBOMRepo struct {
	lines map[string][]entity.VialTypeMaterial
}

func (r *fakeBOMRepo) ListByVialType(vialTypeID string) ([]entity.VialTypeMaterial, error) {
	return r.lines[vialTypeID], nil
}

func (r *fakeBOMRepo) Replace(vialTypeID string, lines []entity.VialTypeMaterial) error {
	r.lines[vialTypeID] = lines
	return nil
}

// fakeTxRunner emula commit/rollback sobre los fakes: si fn falla, restaura
// stock, lotes y movimientos al estado previo a la "transacción".
type fakeTxRunner struct {
	materialRepo *fakeMaterialRepo
	movRepo      *fakeMovementRepo
	batchRepo    *fakeBatchRepo
}

func (t *fakeTxRunner) RunProduction(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	batchRepo repository.BatchRepository,
) error) error {
	stockSnap := make(map[string]decimal.Decimal, len(t.materialRepo.materials))
	for id, m := range t.materialRepo.materials {
		stockSnap[id] = m.CurrentStock
	}
	batchSnap := make(map[string]entity.ProductionBatch, len(t.batchRepo.batches))
	for id, b := range t.batchRepo.batches {
		batchSnap[id] = *b
	}
	movCount := len(t.movRepo.movements)

	if err := fn(t.materialRepo, t.movRepo, t.batchRepo); err != nil {
		for id, stock := range stockSnap {
			t.materialRepo.materials[id].CurrentStock = stock
		}
		for id, b := range batchSnap {
			clone := b
			t.batchRepo.batches[id] = &clone
		}
		t.movRepo.movements = t.movRepo.movements[:movCount]
		return err
	}
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	materialRepo *fakeMaterialRepo
	movRepo      *fakeMovementRepo
	batchRepo    *fakeBatchRepo
	uc           *StartProductionUseCase
}

func newFixture(materials []*entity.RawMaterial, batch *entity.ProductionBatch, lines []entity.VialTypeMaterial) *fixture {
	materialRepo := newFakeMaterialRepo(materials...)
	movRepo := &fakeMovementRepo{}
	batchRepo := newFakeBatchRepo(batch)
	txRunner := &fakeTxRunner{materialRepo: materialRepo, movRepo: movRepo, batchRepo: batchRepo}
	bomRepo := &fakeBOMRepo{lines: map[string][]entity.VialTypeMaterial{batch.VialTypeID: lines}}
	ledger := inventory.NewLedgerUseCase(nil, materialRepo)
	return &fixture{
		materialRepo: materialRepo,
		movRepo:      movRepo,
		batchRepo:    batchRepo,
		uc:           NewStartProductionUseCase(txRunner, ledger, bomRepo),
	}
}

func pendingBatch(quantity int) *entity.ProductionBatch {
	return &entity.ProductionBatch{
		ID:          "batch-1",
		BatchNumber: "L-001",
		VialTypeID:  "vt-10ml",
		Quantity:    quantity,
		SaleType:    entity.SaleTypeIndividual,
		Status:      entity.BatchStatusPending,
	}
}

func TestStartProduction_DescuentaYPasaAInProgress(t *testing.T) {
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		pendingBatch(100),
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)

	err := f.uc.StartProduction(context.Background(), "batch-1", "user-1")
	require.NoError(t, err)

	// 100 unidades * 2 por unidad = 200 descontadas
	assert.True(t, f.materialRepo.stock("caps").Equal(dec("100")))

	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusInProgress, batch.Status)
	require.NotNil(t, batch.StartedAt)

	movs, _ := f.movRepo.ListByReference("batch-1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.True(t, movs[0].Quantity.Equal(dec("-200")))
}

func TestStartProduction_StockInsuficienteRevierteTodo(t *testing.T) {
	// dos materiales: el primero alcanza, el segundo no. Nada debe quedar descontado.
	f := newFixture(
		[]*entity.RawMaterial{
			{ID: "caps", CurrentStock: dec("500")},
			{ID: "labels", CurrentStock: dec("150")},
		},
		pendingBatch(100),
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
			{VialTypeID: "vt-10ml", RawMaterialID: "labels", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)

	err := f.uc.StartProduction(context.Background(), "batch-1", "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// sin descuentos parciales: ambos stocks intactos
	assert.True(t, f.materialRepo.stock("caps").Equal(dec("500")))
	assert.True(t, f.materialRepo.stock("labels").Equal(dec("150")))

	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusPending, batch.Status)
	assert.Nil(t, batch.StartedAt)
	assert.Empty(t, f.movRepo.movements)
}

func TestStartProduction_SoloDesdePending(t *testing.T) {
	batch := pendingBatch(100)
	batch.Status = entity.BatchStatusInProgress
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		batch,
		nil,
	)

	err := f.uc.StartProduction(context.Background(), "batch-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.True(t, f.materialRepo.stock("caps").Equal(dec("300")))
}

func TestStartProduction_LoteInexistente(t *testing.T) {
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		pendingBatch(100),
		nil,
	)
	err := f.uc.StartProduction(context.Background(), "no-existe", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStartProduction_EscalaPorPackYOmitePorCaja(t *testing.T) {
	batch := pendingBatch(100)
	batch.SaleType = entity.SaleTypePack
	batch.PackQuantity = 10
	f := newFixture(
		[]*entity.RawMaterial{
			{ID: "caps", CurrentStock: dec("300")},
			{ID: "pack-box", CurrentStock: dec("50")},
			{ID: "shipping-tape", CurrentStock: dec("20")},
		},
		batch,
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
			{VialTypeID: "vt-10ml", RawMaterialID: "pack-box", QuantityPerUnit: dec("1"), ApplicationType: entity.ApplicationPerPack},
			{VialTypeID: "vt-10ml", RawMaterialID: "shipping-tape", QuantityPerUnit: dec("1"), ApplicationType: entity.ApplicationPerBox},
		},
	)

	err := f.uc.StartProduction(context.Background(), "batch-1", "user-1")
	require.NoError(t, err)

	// per_unit escala por unidades base, per_pack por packs
	assert.True(t, f.materialRepo.stock("caps").Equal(dec("100")))
	assert.True(t, f.materialRepo.stock("pack-box").Equal(dec("40")))
	// per_box no se toca al arrancar: todavía no existen cajas
	assert.True(t, f.materialRepo.stock("shipping-tape").Equal(dec("20")))
}

func TestRestoreMaterials_EsInversoDelArranque(t *testing.T) {
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		pendingBatch(100),
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)

	require.NoError(t, f.uc.StartProduction(context.Background(), "batch-1", "user-1"))
	require.True(t, f.materialRepo.stock("caps").Equal(dec("100")))

	require.NoError(t, f.uc.RestoreMaterials(context.Background(), "batch-1", "user-1"))
	assert.True(t, f.materialRepo.stock("caps").Equal(dec("300")))

	// el histórico conserva ambos lados del ciclo
	movs, _ := f.movRepo.ListByReference("batch-1")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeOUT, movs[0].Type)
	assert.Equal(t, entity.MovementTypeIN, movs[1].Type)
}

func TestCancelBatch_EnProgresoRestauraMateriales(t *testing.T) {
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		pendingBatch(100),
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)

	require.NoError(t, f.uc.StartProduction(context.Background(), "batch-1", "user-1"))
	require.NoError(t, f.uc.CancelBatch(context.Background(), "batch-1", "user-1"))

	assert.True(t, f.materialRepo.stock("caps").Equal(dec("300")))
	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusCancelled, batch.Status)
}

func TestCancelBatch_PendingNoTocaMateriales(t *testing.T) {
	f := newFixture(
		[]*entity.RawMaterial{{ID: "caps", CurrentStock: dec("300")}},
		pendingBatch(100),
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)

	require.NoError(t, f.uc.CancelBatch(context.Background(), "batch-1", "user-1"))

	assert.True(t, f.materialRepo.stock("caps").Equal(dec("300")))
	assert.Empty(t, f.movRepo.movements)
	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusCancelled, batch.Status)
}

func TestCancelBatch_EstadoTerminalFalla(t *testing.T) {
	batch := pendingBatch(100)
	batch.Status = entity.BatchStatusCompleted
	f := newFixture([]*entity.RawMaterial{}, batch, nil)

	err := f.uc.CancelBatch(context.Background(), "batch-1", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
