package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
)

// MySQLStore holds the allocation rows, the movement journal and the
// read models for contracts, items and venues.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (m *MySQLStore) Create(ctx context.Context, a domain.Allocation) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO asignaciones_inventario
			(id, contrato_id, item_id, salon_id, cantidad_asignada, fuente, estado, fecha_asignacion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ContractID, a.ItemID, a.VenueID, a.Quantity, a.Source, a.Status, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

func (m *MySQLStore) ListActiveByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, contrato_id, item_id, salon_id, cantidad_asignada, fuente, estado, fecha_asignacion
		FROM asignaciones_inventario
		WHERE contrato_id = ? AND estado <> ?
		ORDER BY fecha_asignacion`,
		contractID, domain.AllocationStatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		if err := rows.Scan(&a.ID, &a.ContractID, &a.ItemID, &a.VenueID, &a.Quantity, &a.Source, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// Append writes one journal row. The journal is append-only: nothing in
// this adapter updates or deletes movements.
func (m *MySQLStore) Append(ctx context.Context, mv domain.Movement) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO movimientos_inventario
			(id, item_id, tipo_movimiento, origen, destino, cantidad, motivo, contrato_id, asignacion_id, fecha_movimiento)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mv.ID, mv.ItemID, mv.Type, mv.Origin, mv.Destination, mv.Quantity, mv.Reason, mv.ContractID, mv.AllocationID, mv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (m *MySQLStore) List(ctx context.Context, f domain.MovementFilter) ([]domain.Movement, error) {
	query := `
		SELECT id, item_id, tipo_movimiento, origen, destino, cantidad, motivo, contrato_id, asignacion_id, fecha_movimiento
		FROM movimientos_inventario WHERE 1=1`
	var args []any

	if f.ItemID != 0 {
		query += " AND item_id = ?"
		args = append(args, f.ItemID)
	}
	if f.Type != "" {
		query += " AND tipo_movimiento = ?"
		args = append(args, f.Type)
	}
	if !f.From.IsZero() {
		query += " AND fecha_movimiento >= ?"
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		query += " AND fecha_movimiento <= ?"
		args = append(args, f.To)
	}
	query += " ORDER BY fecha_movimiento DESC"

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		var mv domain.Movement
		if err := rows.Scan(&mv.ID, &mv.ItemID, &mv.Type, &mv.Origin, &mv.Destination, &mv.Quantity, &mv.Reason, &mv.ContractID, &mv.AllocationID, &mv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, mv)
	}
	return movements, rows.Err()
}

func (m *MySQLStore) Get(ctx context.Context, id int64) (*domain.Contract, error) {
	var (
		c         domain.Contract
		venueID   sql.NullInt64
		venueName sql.NullString
	)
	err := m.db.QueryRowContext(ctx, `
		SELECT c.id, c.codigo_contrato, c.cantidad_invitados, c.salon_id, s.nombre, c.fecha_evento, c.estado,
			(SELECT COUNT(*) FROM asignaciones_inventario a
			 WHERE a.contrato_id = c.id AND a.estado <> ?)
		FROM contratos c
		LEFT JOIN salones s ON s.id = c.salon_id
		WHERE c.id = ?`,
		domain.AllocationStatusCancelled, id,
	).Scan(&c.ID, &c.Code, &c.GuestCount, &venueID, &venueName, &c.EventDate, &c.State, &c.ActiveAllocations)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query contract: %w", err)
	}

	c.VenueID = venueID.Int64
	c.VenueName = venueName.String
	return &c, nil
}

func (m *MySQLStore) ListEligible(ctx context.Context, from, to time.Time) ([]domain.Contract, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT c.id, c.codigo_contrato, c.cantidad_invitados, c.salon_id, s.nombre, c.fecha_evento, c.estado
		FROM contratos c
		JOIN salones s ON s.id = c.salon_id
		WHERE c.estado = ?
		  AND c.salon_id IS NOT NULL
		  AND c.fecha_evento >= ? AND c.fecha_evento <= ?
		  AND NOT EXISTS (
			SELECT 1 FROM asignaciones_inventario a
			WHERE a.contrato_id = c.id AND a.estado <> ?
		  )
		ORDER BY c.fecha_evento`,
		domain.ContractStateActive, from, to, domain.AllocationStatusCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("list eligible contracts: %w", err)
	}
	defer rows.Close()

	var contracts []domain.Contract
	for rows.Next() {
		var c domain.Contract
		if err := rows.Scan(&c.ID, &c.Code, &c.GuestCount, &c.VenueID, &c.VenueName, &c.EventDate, &c.State); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	return contracts, rows.Err()
}

func (m *MySQLStore) ListActive(ctx context.Context) ([]domain.Item, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, nombre, unidad_medida, categoria, activo
		FROM inventario_items WHERE activo = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Unit, &item.Category, &item.Active); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (m *MySQLStore) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	var v domain.Venue
	err := m.db.QueryRowContext(ctx, `SELECT id, nombre FROM salones WHERE id = ?`, id).Scan(&v.ID, &v.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query venue: %w", err)
	}
	return &v, nil
}
