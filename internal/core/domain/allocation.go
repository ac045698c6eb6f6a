package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AllocationStatus string

const (
	AllocationStatusAssigned  AllocationStatus = "assigned"
	AllocationStatusUsed      AllocationStatus = "used"
	AllocationStatusCancelled AllocationStatus = "cancelled"
)

// Allocation reserves stock for one contract item. Created only by the
// allocator; the surrounding application moves it to used or cancelled.
type Allocation struct {
	ID         string
	ContractID int64
	ItemID     int64
	VenueID    int64
	Quantity   decimal.Decimal
	Source     Tier
	Status     AllocationStatus
	CreatedAt  time.Time
}

// RunSummary reports one auto-assignment batch.
type RunSummary struct {
	TotalEligible int `json:"total_eligible"`
	Assigned      int `json:"assigned_count"`
	Errors        int `json:"error_count"`
}
