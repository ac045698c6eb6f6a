package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const MovementTypeAssignment MovementType = "assignment"

// Movement is one append-only audit row. Origin and destination are
// loci: "central" or a venue's lowercased name.
type Movement struct {
	ID           string
	ItemID       int64
	Type         MovementType
	Origin       string
	Destination  string
	Quantity     decimal.Decimal
	Reason       string
	ContractID   int64
	AllocationID string
	CreatedAt    time.Time
}

type MovementFilter struct {
	ItemID int64
	Type   MovementType
	From   time.Time
	To     time.Time
}
