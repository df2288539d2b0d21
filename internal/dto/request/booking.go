package request

// CreateBookingRequest is the commit payload assembled from a completed
// booking dialog. Every field has been collected by the conversation
// flow before this struct is built.
type CreateBookingRequest struct {
	EventID       int64   `validate:"required"`
	UserID        int64   `validate:"required"`
	Username      *string
	CustomerName  string  `validate:"required,min=2"`
	CustomerPhone string  `validate:"required,ruphone"`
	TicketsCount  int     `validate:"required,gt=0"`
	Notes         *string
	PaymentMethod string  `validate:"required,oneof=cash online_stub"`
}
