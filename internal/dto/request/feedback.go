package request

type CreateFeedbackRequest struct {
	EventID int64  `validate:"required"`
	UserID  int64  `validate:"required"`
	Text    string `validate:"required,min=1,max=500"`
	Rating  *int   `validate:"omitempty,min=1,max=5"`
}
