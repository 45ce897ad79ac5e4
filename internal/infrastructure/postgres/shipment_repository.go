package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/entity"
	"github.com/Joan-abreu/vialflow-pro-sub001/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de envíos y cajas sobre PostgreSQL
// (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

const shipmentColumns = `id, batch_id, status, carrier, tracking_number, dest_name, dest_address, dest_city, dest_state, dest_zip, dest_country, shipped_at, delivered_at, created_at, updated_at`

// Create persiste un envío.
func (r *ShipmentRepo) Create(s *entity.Shipment) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.BatchID, s.Status, s.Carrier, s.TrackingNumber, s.DestName,
		s.DestAddress, s.DestCity, s.DestState, s.DestZip, s.DestCountry,
		s.ShippedAt, s.DeliveredAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID. nil si no existe.
func (r *ShipmentRepo) GetByID(id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	return scanShipment(r.q.QueryRow(context.Background(), query, id))
}

// GetByTrackingNumber obtiene un envío por su número de tracking (webhook del carrier).
func (r *ShipmentRepo) GetByTrackingNumber(trackingNumber string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_number = $1`
	return scanShipment(r.q.QueryRow(context.Background(), query, trackingNumber))
}

// Update persiste el envío completo.
func (r *ShipmentRepo) Update(s *entity.Shipment) error {
	query := `
		UPDATE shipments
		SET status = $2, carrier = $3, tracking_number = $4, dest_name = $5,
		    dest_address = $6, dest_city = $7, dest_state = $8, dest_zip = $9,
		    dest_country = $10, shipped_at = $11, delivered_at = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Status, s.Carrier, s.TrackingNumber, s.DestName, s.DestAddress,
		s.DestCity, s.DestState, s.DestZip, s.DestCountry, s.ShippedAt,
		s.DeliveredAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByBatch lista los envíos de un lote, más antiguo primero.
func (r *ShipmentRepo) ListByBatch(batchID string) ([]*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE batch_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list shipments by batch: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(&s.ID, &s.BatchID, &s.Status, &s.Carrier, &s.TrackingNumber,
			&s.DestName, &s.DestAddress, &s.DestCity, &s.DestState, &s.DestZip,
			&s.DestCountry, &s.ShippedAt, &s.DeliveredAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateBox persiste una caja de un envío.
func (r *ShipmentRepo) CreateBox(b *entity.ShipmentBox) error {
	query := `
		INSERT INTO shipment_boxes (id, shipment_id, box_number, packs_per_box, bottles_per_box, weight_lb, length_in, width_in, height_in, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.ShipmentID, b.BoxNumber, b.PacksPerBox, b.BottlesPerBox,
		b.WeightLb, b.LengthIn, b.WidthIn, b.HeightIn, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create shipment box: %w", err)
	}
	return nil
}

// ListBoxes lista las cajas de un envío ordenadas por número.
func (r *ShipmentRepo) ListBoxes(shipmentID string) ([]*entity.ShipmentBox, error) {
	query := `
		SELECT id, shipment_id, box_number, packs_per_box, bottles_per_box, weight_lb, length_in, width_in, height_in, created_at
		FROM shipment_boxes WHERE shipment_id = $1
		ORDER BY box_number`
	rows, err := r.q.Query(context.Background(), query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment boxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ShipmentBox
	for rows.Next() {
		var b entity.ShipmentBox
		if err := rows.Scan(&b.ID, &b.ShipmentID, &b.BoxNumber, &b.PacksPerBox,
			&b.BottlesPerBox, &b.WeightLb, &b.LengthIn, &b.WidthIn, &b.HeightIn, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment box: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// DeleteBox elimina una caja por ID.
func (r *ShipmentRepo) DeleteBox(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM shipment_boxes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment box: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanShipment(row pgx.Row) (*entity.Shipment, error) {
	var s entity.Shipment
	err := row.Scan(&s.ID, &s.BatchID, &s.Status, &s.Carrier, &s.TrackingNumber,
		&s.DestName, &s.DestAddress, &s.DestCity, &s.DestState, &s.DestZip,
		&s.DestCountry, &s.ShippedAt, &s.DeliveredAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}
