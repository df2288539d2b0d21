package adaptor

import (
	"fmt"
	"strconv"
	"strings"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/engine"
)

// Callback tags carried inside inline-keyboard buttons. The adapter
// encodes engine actions into these strings and decodes them back into
// the engine's closed action variant; nothing past this boundary works
// with raw tags.
const (
	tagFilterPrefix       = "filter_"
	tagBookEventPrefix    = "book_event_"
	tagFeedbackEvent      = "feedback_event_"
	tagCancelBooking      = "cancel_booking_"
	tagPaymentPrefix      = "payment_"
	tagSkipNotes          = "skip_notes"
	tagRatingPrefix       = "rating_"
	tagAdminConfirmPrefix = "admin_confirm_"
	tagAdminCancelPrefix  = "admin_cancel_"
	tagFilterAll          = "all"
)

func encodeAction(action engine.Action) string {
	switch action.Kind {
	case engine.ActionFilterCategory:
		if action.Category == "" {
			return tagFilterPrefix + tagFilterAll
		}
		return tagFilterPrefix + string(action.Category)
	case engine.ActionSelectBookingEvent:
		return fmt.Sprintf("%s%d", tagBookEventPrefix, action.EventID)
	case engine.ActionSelectFeedbackEvent:
		return fmt.Sprintf("%s%d", tagFeedbackEvent, action.EventID)
	case engine.ActionCancelBooking:
		return fmt.Sprintf("%s%d", tagCancelBooking, action.BookingID)
	case engine.ActionSelectPayment:
		return tagPaymentPrefix + string(action.Payment)
	case engine.ActionSkipNotes:
		return tagSkipNotes
	case engine.ActionSelectRating:
		return fmt.Sprintf("%s%d", tagRatingPrefix, action.Rating)
	case engine.ActionAdminConfirm:
		return fmt.Sprintf("%s%d", tagAdminConfirmPrefix, action.BookingID)
	case engine.ActionAdminCancel:
		return fmt.Sprintf("%s%d", tagAdminCancelPrefix, action.BookingID)
	}
	return ""
}

func decodeAction(data string) (*engine.Action, error) {
	switch {
	case data == tagSkipNotes:
		return &engine.Action{Kind: engine.ActionSkipNotes}, nil

	case strings.HasPrefix(data, tagAdminConfirmPrefix):
		id, err := parseTagID(data, tagAdminConfirmPrefix)
		if err != nil {
			return nil, err
		}
		return &engine.Action{Kind: engine.ActionAdminConfirm, BookingID: id}, nil

	case strings.HasPrefix(data, tagAdminCancelPrefix):
		id, err := parseTagID(data, tagAdminCancelPrefix)
		if err != nil {
			return nil, err
		}
		return &engine.Action{Kind: engine.ActionAdminCancel, BookingID: id}, nil

	case strings.HasPrefix(data, tagBookEventPrefix):
		id, err := parseTagID(data, tagBookEventPrefix)
		if err != nil {
			return nil, err
		}
		return &engine.Action{Kind: engine.ActionSelectBookingEvent, EventID: id}, nil

	case strings.HasPrefix(data, tagFeedbackEvent):
		id, err := parseTagID(data, tagFeedbackEvent)
		if err != nil {
			return nil, err
		}
		return &engine.Action{Kind: engine.ActionSelectFeedbackEvent, EventID: id}, nil

	case strings.HasPrefix(data, tagCancelBooking):
		id, err := parseTagID(data, tagCancelBooking)
		if err != nil {
			return nil, err
		}
		return &engine.Action{Kind: engine.ActionCancelBooking, BookingID: id}, nil

	case strings.HasPrefix(data, tagPaymentPrefix):
		method := entity.PaymentMethod(strings.TrimPrefix(data, tagPaymentPrefix))
		if !method.Valid() {
			return nil, fmt.Errorf("unknown payment method tag %q", data)
		}
		return &engine.Action{Kind: engine.ActionSelectPayment, Payment: method}, nil

	case strings.HasPrefix(data, tagRatingPrefix):
		rating, err := strconv.Atoi(strings.TrimPrefix(data, tagRatingPrefix))
		if err != nil || rating < 1 || rating > 5 {
			return nil, fmt.Errorf("invalid rating tag %q", data)
		}
		return &engine.Action{Kind: engine.ActionSelectRating, Rating: rating}, nil

	case strings.HasPrefix(data, tagFilterPrefix):
		raw := strings.TrimPrefix(data, tagFilterPrefix)
		if raw == tagFilterAll {
			return &engine.Action{Kind: engine.ActionFilterCategory}, nil
		}
		category := entity.Category(raw)
		if !category.Valid() {
			return nil, fmt.Errorf("unknown category tag %q", data)
		}
		return &engine.Action{Kind: engine.ActionFilterCategory, Category: category}, nil
	}

	return nil, fmt.Errorf("unknown callback tag %q", data)
}

func parseTagID(data, prefix string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id in callback tag %q: %w", data, err)
	}
	return id, nil
}
