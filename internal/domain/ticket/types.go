package ticket

type Status string

const (
	StatusReserved Status = "RESERVED"
	StatusSold     Status = "SOLD"
	StatusReleased Status = "RELEASED"
)

// SeatStatus is the per-seat view exposed to clients. A seat with no live ticket is available.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "AVAILABLE"
	SeatReserved  SeatStatus = "RESERVED"
	SeatSold      SeatStatus = "SOLD"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReserved, StatusSold, StatusReleased:
		return true
	default:
		return false
	}
}

// IsLive reports whether the status occupies its seat.
func (s Status) IsLive() bool {
	return s == StatusReserved || s == StatusSold
}

func (s Status) SeatStatus() SeatStatus {
	switch s {
	case StatusReserved:
		return SeatReserved
	case StatusSold:
		return SeatSold
	default:
		return SeatAvailable
	}
}

// LiveStatuses is the set guarded by the ledger's unique seat index.
func LiveStatuses() []string {
	return []string{string(StatusReserved), string(StatusSold)}
}
