package entity

import (
	"time"
)

type Category string

const (
	CategoryConcert Category = "concert"
	CategoryMovie   Category = "movie"
	CategoryPlay    Category = "play"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryConcert, CategoryMovie, CategoryPlay:
		return true
	}
	return false
}

// Event is a catalog entry. Events are never mutated after creation.
type Event struct {
	ID        int64     `db:"id"`
	Date      time.Time `db:"date"`
	Time      *string   `db:"time"` // optional "HH:MM"
	Title     string    `db:"title"`
	Category  Category  `db:"category"`
	BasePrice float64   `db:"base_ticket_price"`
}

// IsPast reports whether the event date is strictly before today.
func (e *Event) IsPast(now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return e.Date.Before(today)
}
