package domain

import "time"

const ContractStateActive = "active"

// Contract is external read-only data: this core never mutates it.
type Contract struct {
	ID                int64
	Code              string
	GuestCount        int
	VenueID           int64
	VenueName         string
	EventDate         time.Time
	State             string
	ActiveAllocations int // non-cancelled allocation count
}

type Venue struct {
	ID   int64
	Name string
}
