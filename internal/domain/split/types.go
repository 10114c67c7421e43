package split

type LinkStatus string

const (
	LinkUnpaid  LinkStatus = "unpaid"
	LinkPaid    LinkStatus = "paid"
	LinkExpired LinkStatus = "expired"
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusCompleted     Status = "completed"
	StatusExpired       Status = "expired"
)

func (s LinkStatus) IsValid() bool {
	switch s {
	case LinkUnpaid, LinkPaid, LinkExpired:
		return true
	default:
		return false
	}
}
