package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/enmanuelcanelon/DiamondSistem-sub006/internal/core/domain"
)

// MySQLLedger stores both inventory tiers. Decrements are conditional
// UPDATEs guarded by `cantidad_actual >= ?`, so concurrent callers can
// never drive a record below zero.
type MySQLLedger struct {
	db *sql.DB
}

func NewMySQLLedger(db *sql.DB) *MySQLLedger {
	return &MySQLLedger{db: db}
}

func (l *MySQLLedger) GetCentral(ctx context.Context, itemID int64) (*domain.StockRecord, error) {
	var rec domain.StockRecord
	err := l.db.QueryRowContext(ctx, `
		SELECT item_id, cantidad_actual, cantidad_minima, fecha_actualizacion
		FROM inventario_central WHERE item_id = ?`, itemID,
	).Scan(&rec.ItemID, &rec.QuantityActual, &rec.QuantityMinimum, &rec.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query central stock: %w", err)
	}
	return &rec, nil
}

func (l *MySQLLedger) GetVenue(ctx context.Context, venueID, itemID int64) (*domain.StockRecord, error) {
	var rec domain.StockRecord
	err := l.db.QueryRowContext(ctx, `
		SELECT salon_id, item_id, cantidad_actual, cantidad_minima, fecha_actualizacion
		FROM inventario_salones WHERE salon_id = ? AND item_id = ?`, venueID, itemID,
	).Scan(&rec.VenueID, &rec.ItemID, &rec.QuantityActual, &rec.QuantityMinimum, &rec.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query venue stock: %w", err)
	}
	return &rec, nil
}

func (l *MySQLLedger) DecrementCentral(ctx context.Context, itemID int64, qty decimal.Decimal) (bool, error) {
	result, err := l.db.ExecContext(ctx, `
		UPDATE inventario_central
		SET cantidad_actual = cantidad_actual - ?, fecha_actualizacion = NOW()
		WHERE item_id = ? AND cantidad_actual >= ?`,
		qty, itemID, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement central stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (l *MySQLLedger) DecrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) (bool, error) {
	result, err := l.db.ExecContext(ctx, `
		UPDATE inventario_salones
		SET cantidad_actual = cantidad_actual - ?, fecha_actualizacion = NOW()
		WHERE salon_id = ? AND item_id = ? AND cantidad_actual >= ?`,
		qty, venueID, itemID, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement venue stock: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (l *MySQLLedger) IncrementVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error {
	_, err := l.db.ExecContext(ctx, `
		UPDATE inventario_salones
		SET cantidad_actual = cantidad_actual + ?, fecha_actualizacion = NOW()
		WHERE salon_id = ? AND item_id = ?`,
		qty, venueID, itemID,
	)
	if err != nil {
		return fmt.Errorf("increment venue stock: %w", err)
	}
	return nil
}

func (l *MySQLLedger) UpsertVenue(ctx context.Context, venueID, itemID int64, qty decimal.Decimal) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO inventario_salones (salon_id, item_id, cantidad_actual, cantidad_minima, fecha_actualizacion)
		VALUES (?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			cantidad_actual = cantidad_actual + VALUES(cantidad_actual),
			fecha_actualizacion = NOW()`,
		venueID, itemID, qty, domain.DefaultVenueMinimum,
	)
	if err != nil {
		return fmt.Errorf("upsert venue stock: %w", err)
	}
	return nil
}

func (l *MySQLLedger) ListCentral(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT item_id, cantidad_actual, cantidad_minima, fecha_actualizacion
		FROM inventario_central ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("list central stock: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.ItemID, &rec.QuantityActual, &rec.QuantityMinimum, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan central stock: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (l *MySQLLedger) ListVenues(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT salon_id, item_id, cantidad_actual, cantidad_minima, fecha_actualizacion
		FROM inventario_salones ORDER BY salon_id, item_id`)
	if err != nil {
		return nil, fmt.Errorf("list venue stock: %w", err)
	}
	defer rows.Close()

	var records []domain.StockRecord
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.VenueID, &rec.ItemID, &rec.QuantityActual, &rec.QuantityMinimum, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan venue stock: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
