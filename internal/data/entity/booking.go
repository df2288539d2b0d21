package entity

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodOnlineStub PaymentMethod = "online_stub"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCash || p == PaymentMethodOnlineStub
}

type Booking struct {
	Base
	EventID       int64         `db:"event_id"`
	UserID        int64         `db:"user_id"`
	Username      *string       `db:"username"`
	CustomerName  string        `db:"customer_name"`
	CustomerPhone string        `db:"customer_phone"`
	TicketsCount  int           `db:"tickets_count"`
	Notes         *string       `db:"notes"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	TotalPrice    float64       `db:"total_price"`
	Status        BookingStatus `db:"status"`
}

// BookingWithEvent is a booking joined with its event row, the shape
// every listing and notification works with.
type BookingWithEvent struct {
	Booking
	Event Event
}
