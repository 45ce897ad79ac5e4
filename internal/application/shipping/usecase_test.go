package shipping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/application/dto"
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

func (r *fakeMaterialRepo) Create(*entity.RawMaterial) error { return nil }

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

func (r *fakeMaterialRepo) Update(*entity.RawMaterial) error { return nil }

func (r *fakeMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *fakeMaterialRepo) List(int, int) ([]*entity.RawMaterial, error)     { return nil, nil }
func (r *fakeMaterialRepo) ListBelowMinimum() ([]*entity.RawMaterial, error) { return nil, nil }

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

func (r *fakeMovementRepo) ListByReference(string) ([]*entity.MaterialMovement, error) {
	return nil, nil
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

func (r *fakeBatchRepo) Create(*entity.ProductionBatch) error { return nil }

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

func (r *fakeBatchRepo) List(string, int, int) ([]*entity.ProductionBatch, error) {
	return nil, nil
}

type fakeShipmentRepo struct {
	shipments map[string]*entity.Shipment
	boxes     map[string][]*entity.ShipmentBox
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{
		shipments: make(map[string]*entity.Shipment),
		boxes:     make(map[string][]*entity.ShipmentBox),
	}
}

func (r *fakeShipmentRepo) Create(s *entity.Shipment) error {
	clone := *s
	r.shipments[s.ID] = &clone
	return nil
}

func (r *fakeShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	s, ok := r.shipments[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeShipmentRepo) GetByTrackingNumber(trackingNumber string) (*entity.Shipment, error) {
	for _, s := range r.shipments {
		if s.TrackingNumber == trackingNumber {
			clone := *s
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeShipmentRepo) Update(s *entity.Shipment) error {
	clone := *s
	r.shipments[s.ID] = &clone
	return nil
}

func (r *fakeShipmentRepo) ListByBatch(batchID string) ([]*entity.Shipment, error) {
	var out []*entity.Shipment
	for _, s := range r.shipments {
		if s.BatchID == batchID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) CreateBox(b *entity.ShipmentBox) error {
	clone := *b
	r.boxes[b.ShipmentID] = append(r.boxes[b.ShipmentID], &clone)
	return nil
}

func (r *fakeShipmentRepo) ListBoxes(shipmentID string) ([]*entity.ShipmentBox, error) {
	return r.boxes[shipmentID], nil
}

func (r *fakeShipmentRepo) DeleteBox(id string) error { return nil }

type fakeShippingTxRunner struct {
	materialRepo *fakeMaterialRepo
	movRepo      *fakeMovementRepo
	batchRepo    *fakeBatchRepo
	shipmentRepo *fakeShipmentRepo
}

func (t *fakeShippingTxRunner) RunShipping(ctx context.Context, fn func(
	materialRepo repository.RawMaterialRepository,
	movRepo repository.MaterialMovementRepository,
	batchRepo repository.BatchRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	return fn(t.materialRepo, t.movRepo, t.batchRepo, t.shipmentRepo)
}

type fakeBOMRepo struct {
	lines map[string][]entity.VialTypeMaterial
}

func (r *fakeBOMRepo) ListByVialType(vialTypeID string) ([]entity.VialTypeMaterial, error) {
	return r.lines[vialTypeID], nil
}

func (r *fakeBOMRepo) Replace(string, []entity.VialTypeMaterial) error { return nil }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

type fixture struct {
	materialRepo *fakeMaterialRepo
	batchRepo    *fakeBatchRepo
	shipmentRepo *fakeShipmentRepo
	uc           *ShipmentUseCase
}

func newFixture(batch *entity.ProductionBatch, materials []*entity.RawMaterial, bomLines []entity.VialTypeMaterial) *fixture {
	materialRepo := newFakeMaterialRepo(materials...)
	movRepo := &fakeMovementRepo{}
	batchRepo := newFakeBatchRepo(batch)
	shipmentRepo := newFakeShipmentRepo()
	txRunner := &fakeShippingTxRunner{
		materialRepo: materialRepo,
		movRepo:      movRepo,
		batchRepo:    batchRepo,
		shipmentRepo: shipmentRepo,
	}
	bomRepo := &fakeBOMRepo{lines: map[string][]entity.VialTypeMaterial{batch.VialTypeID: bomLines}}
	ledger := inventory.NewLedgerUseCase(nil, materialRepo)
	return &fixture{
		materialRepo: materialRepo,
		batchRepo:    batchRepo,
		shipmentRepo: shipmentRepo,
		uc:           NewShipmentUseCase(txRunner, shipmentRepo, batchRepo, bomRepo, ledger, nil, nil),
	}
}

func inProgressBatch() *entity.ProductionBatch {
	return &entity.ProductionBatch{
		ID:         "batch-1",
		VialTypeID: "vt-10ml",
		Quantity:   100,
		SaleType:   entity.SaleTypeIndividual,
		Status:     entity.BatchStatusInProgress,
	}
}

func createRequest() dto.CreateShipmentRequest {
	return dto.CreateShipmentRequest{
		BatchID:  "batch-1",
		Carrier:  "ups",
		DestName: "Clínica Aurora",
		DestZip:  "33101",
	}
}

func TestCreateShipment_QuedaEnPreparing(t *testing.T) {
	f := newFixture(inProgressBatch(), nil, nil)

	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusPreparing, resp.Status)

	// un envío activo mantiene el lote en in_progress
	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusInProgress, batch.Status)
}

func TestCreateShipment_LoteCanceladoFalla(t *testing.T) {
	batch := inProgressBatch()
	batch.Status = entity.BatchStatusCancelled
	f := newFixture(batch, nil, nil)

	_, err := f.uc.Create(context.Background(), createRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAddBox_RecalculaUnidadesDespachadas(t *testing.T) {
	f := newFixture(inProgressBatch(), nil, nil)
	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = f.uc.AddBox(context.Background(), resp.ID, dto.AddBoxRequest{BoxNumber: 1, BottlesPerBox: 40})
	require.NoError(t, err)
	_, err = f.uc.AddBox(context.Background(), resp.ID, dto.AddBoxRequest{BoxNumber: 2, BottlesPerBox: 60})
	require.NoError(t, err)

	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, 100, batch.ShippedUnits)
}

func TestTrackingDelivered_CompletaElLote(t *testing.T) {
	f := newFixture(inProgressBatch(), nil, nil)
	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	tracking := "1Z999"
	_, err = f.uc.Update(context.Background(), resp.ID, dto.UpdateShipmentRequest{TrackingNumber: &tracking})
	require.NoError(t, err)

	// el vocabulario del carrier se mapea al interno
	err = f.uc.ApplyTrackingEvent(context.Background(), dto.TrackingEventRequest{TrackingNumber: tracking, Status: "in_transit"})
	require.NoError(t, err)

	shipment, _ := f.shipmentRepo.GetByID(resp.ID)
	assert.Equal(t, entity.ShipmentStatusShipped, shipment.Status)
	require.NotNil(t, shipment.ShippedAt)

	err = f.uc.ApplyTrackingEvent(context.Background(), dto.TrackingEventRequest{TrackingNumber: tracking, Status: "delivered"})
	require.NoError(t, err)

	shipment, _ = f.shipmentRepo.GetByID(resp.ID)
	assert.Equal(t, entity.ShipmentStatusDelivered, shipment.Status)
	require.NotNil(t, shipment.DeliveredAt)

	// todos los envíos entregados: el lote se completa
	batch, _ := f.batchRepo.GetByID("batch-1")
	assert.Equal(t, entity.BatchStatusCompleted, batch.Status)
	require.NotNil(t, batch.CompletedAt)
}

func TestTrackingException_NoCambiaElEstado(t *testing.T) {
	f := newFixture(inProgressBatch(), nil, nil)
	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	tracking := "1Z999"
	_, err = f.uc.Update(context.Background(), resp.ID, dto.UpdateShipmentRequest{TrackingNumber: &tracking})
	require.NoError(t, err)

	err = f.uc.ApplyTrackingEvent(context.Background(), dto.TrackingEventRequest{TrackingNumber: tracking, Status: "customs_hold"})
	require.NoError(t, err)

	shipment, _ := f.shipmentRepo.GetByID(resp.ID)
	assert.Equal(t, entity.ShipmentStatusPreparing, shipment.Status)
}

func TestTrackingDesconocido_Devuelve404(t *testing.T) {
	f := newFixture(inProgressBatch(), nil, nil)

	err := f.uc.ApplyTrackingEvent(context.Background(), dto.TrackingEventRequest{TrackingNumber: "no-existe", Status: "delivered"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMapCarrierStatus(t *testing.T) {
	cases := map[string]string{
		"in_transit":       TrackingShipped,
		"picked_up":        TrackingShipped,
		"shipped":          TrackingShipped,
		"out_for_delivery": TrackingShipped,
		"delivered":        TrackingDelivered,
		"lost":             TrackingException,
		"":                 TrackingException,
	}
	for carrierStatus, want := range cases {
		assert.Equal(t, want, mapCarrierStatus(carrierStatus), carrierStatus)
	}
}

func TestRestoreBoxMaterials_SoloLineasPerBox(t *testing.T) {
	f := newFixture(
		inProgressBatch(),
		[]*entity.RawMaterial{
			{ID: "shipping-box", CurrentStock: dec("10")},
			{ID: "caps", CurrentStock: dec("100")},
		},
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "shipping-box", QuantityPerUnit: dec("1"), ApplicationType: entity.ApplicationPerBox},
			{VialTypeID: "vt-10ml", RawMaterialID: "caps", QuantityPerUnit: dec("2"), ApplicationType: entity.ApplicationPerUnit},
		},
	)
	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	_, err = f.uc.AddBox(context.Background(), resp.ID, dto.AddBoxRequest{BoxNumber: 1, BottlesPerBox: 50})
	require.NoError(t, err)
	_, err = f.uc.AddBox(context.Background(), resp.ID, dto.AddBoxRequest{BoxNumber: 2, BottlesPerBox: 50})
	require.NoError(t, err)

	require.NoError(t, f.uc.RestoreBoxMaterials(context.Background(), resp.ID, "user-1"))

	// 2 cajas * 1 por caja restauradas; per_unit no se toca aquí
	m, _ := f.materialRepo.GetByID("shipping-box")
	assert.True(t, m.CurrentStock.Equal(dec("12")))
	m, _ = f.materialRepo.GetByID("caps")
	assert.True(t, m.CurrentStock.Equal(dec("100")))
}

func TestRestoreBoxMaterials_SinCajasEsNoOp(t *testing.T) {
	f := newFixture(
		inProgressBatch(),
		[]*entity.RawMaterial{{ID: "shipping-box", CurrentStock: dec("10")}},
		[]entity.VialTypeMaterial{
			{VialTypeID: "vt-10ml", RawMaterialID: "shipping-box", QuantityPerUnit: dec("1"), ApplicationType: entity.ApplicationPerBox},
		},
	)
	resp, err := f.uc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, f.uc.RestoreBoxMaterials(context.Background(), resp.ID, "user-1"))

	m, _ := f.materialRepo.GetByID("shipping-box")
	assert.True(t, m.CurrentStock.Equal(dec("10")))
}
