package entity

type Feedback struct {
	BaseSimple
	EventID int64  `db:"event_id"`
	UserID  int64  `db:"user_id"`
	Text    string `db:"text"`
	Rating  *int   `db:"rating"` // 1-5
}
