package adaptor

import (
	"fmt"
	"strings"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/engine"
)

// Main-menu reply keyboard labels. Pressing one is equivalent to the
// matching command.
const (
	labelSchedule   = "📅 Расписание"
	labelBook       = "🎫 Забронировать"
	labelMyBookings = "📋 Мои брони"
	labelFeedback   = "💬 Оставить отзыв"
)

const welcomeText = "🎪 Добро пожаловать в бот бронирования билетов!\n\n" +
	"Здесь вы можете:\n" +
	"📅 Посмотреть расписание мероприятий\n" +
	"🎫 Забронировать билеты\n" +
	"📋 Управлять своими бронями\n" +
	"💬 Оставить отзыв о посещенных событиях\n\n" +
	"Используйте меню ниже или команды:\n" +
	"/events - расписание\n" +
	"/book - забронировать\n" +
	"/mybookings - мои брони\n" +
	"/feedback - оставить отзыв\n" +
	"/help - помощь"

const helpText = "🆘 Помощь по использованию бота\n\n" +
	"📋 Основные команды:\n" +
	"/events - посмотреть расписание мероприятий\n" +
	"/book - забронировать билеты\n" +
	"/mybookings - посмотреть свои брони\n" +
	"/feedback - оставить отзыв\n" +
	"/cancel - отменить текущее действие\n\n" +
	"🎫 Процесс бронирования:\n" +
	"1. Выберите мероприятие\n" +
	"2. Укажите количество билетов\n" +
	"3. Добавьте пожелания (необязательно)\n" +
	"4. Введите имя и телефон\n" +
	"5. Выберите способ оплаты\n" +
	"6. Подтвердите бронь\n\n" +
	"❓ Если возникли вопросы, обратитесь к организаторам."

func categoryEmoji(category entity.Category) string {
	switch category {
	case entity.CategoryConcert:
		return "🎵"
	case entity.CategoryMovie:
		return "🎬"
	case entity.CategoryPlay:
		return "🎭"
	}
	return "🎪"
}

func statusEmoji(status entity.BookingStatus) string {
	switch status {
	case entity.BookingStatusPending:
		return "⏳"
	case entity.BookingStatusConfirmed:
		return "✅"
	case entity.BookingStatusCancelled:
		return "❌"
	}
	return "❓"
}

func paymentLabel(method entity.PaymentMethod) string {
	if method == entity.PaymentMethodOnlineStub {
		return "Онлайн (заглушка)"
	}
	return "Наличными на месте"
}

func formatDate(date time.Time) string {
	return date.Format("2006-01-02")
}

// formatEventDate renders the date with the optional start time, the
// way all event mentions display it.
func formatEventDate(event *entity.Event) string {
	if event.Time != nil && *event.Time != "" {
		return formatDate(event.Date) + " в " + *event.Time
	}
	return formatDate(event.Date)
}

func formatEvent(event *entity.Event) string {
	return fmt.Sprintf("%s %s\n📅 %s\n🏷️ Категория: %s\n💰 Цена: %.0f ₽",
		categoryEmoji(event.Category),
		event.Title,
		formatEventDate(event),
		event.Category,
		event.BasePrice,
	)
}

func formatBooking(booking *entity.BookingWithEvent) string {
	return fmt.Sprintf("%s Бронь #%d\n🎪 %s\n📅 %s\n🎫 Билетов: %d\n💰 Сумма: %.0f ₽\n📊 Статус: %s",
		statusEmoji(booking.Status),
		booking.ID,
		booking.Event.Title,
		formatEventDate(&booking.Event),
		booking.TicketsCount,
		booking.TotalPrice,
		booking.Status,
	)
}

// formatAdminBooking includes the customer contact details, which the
// user-facing view never shows.
func formatAdminBooking(booking *entity.BookingWithEvent) string {
	notes := "Нет"
	if booking.Notes != nil && *booking.Notes != "" {
		notes = *booking.Notes
	}
	return fmt.Sprintf("🎫 Бронь #%d\n🎪 %s\n📅 %s\n👤 %s\n📞 %s\n🎫 Билетов: %d\n💰 Сумма: %.0f ₽\n📊 Статус: %s\n📝 Пожелания: %s",
		booking.ID,
		booking.Event.Title,
		formatEventDate(&booking.Event),
		booking.CustomerName,
		booking.CustomerPhone,
		booking.TicketsCount,
		booking.TotalPrice,
		booking.Status,
		notes,
	)
}

func formatBookingCreated(booking *entity.BookingWithEvent) string {
	notes := "Нет"
	if booking.Notes != nil && *booking.Notes != "" {
		notes = *booking.Notes
	}
	payment := paymentLabel(booking.PaymentMethod)
	return fmt.Sprintf("✅ Ваша заявка на бронирование принята!\n\n"+
		"🎫 Номер заявки: #%d\n"+
		"🎪 Мероприятие: %s\n"+
		"📅 Дата: %s\n"+
		"👤 Имя: %s\n"+
		"📞 Телефон: %s\n"+
		"🎫 Билетов: %d\n"+
		"💰 Сумма: %.0f ₽\n"+
		"💳 Оплата: %s\n"+
		"📝 Пожелания: %s\n\n"+
		"📊 Статус: Ожидает подтверждения организатором\n\n"+
		"⚠️ Оплата не производится в боте. Вы выбрали способ оплаты: %s",
		booking.ID,
		booking.Event.Title,
		formatDate(booking.Event.Date),
		booking.CustomerName,
		booking.CustomerPhone,
		booking.TicketsCount,
		booking.TotalPrice,
		payment,
		notes,
		payment,
	)
}

// renderText turns a structured reply into its presentation text.
func renderText(out engine.Outbound) string {
	switch out.Kind {
	case engine.MsgWelcome:
		return welcomeText
	case engine.MsgHelp:
		return helpText
	case engine.MsgUnknown:
		return "❓ Не понимаю. Используйте меню или команды."
	case engine.MsgFlowCancelled:
		return "❌ Операция отменена."
	case engine.MsgForbidden:
		return "❌ Недостаточно прав."
	case engine.MsgInternalError:
		return "❌ Произошла ошибка. Попробуйте еще раз."

	case engine.MsgScheduleMenu:
		return "📅 Расписание мероприятий\n\nВыберите категорию:"
	case engine.MsgNoEvents:
		return "📅 Пока нет запланированных мероприятий."
	case engine.MsgNoEventsInCategory:
		return "📅 Нет мероприятий в выбранной категории."
	case engine.MsgEventList:
		label := "все категории"
		if out.Category != "" {
			label = string(out.Category)
		}
		return eventListText(fmt.Sprintf("📅 Мероприятия (%s):\n\n", label), out.Events)

	case engine.MsgChooseBookingEvent:
		return "🎫 Выберите мероприятие для бронирования:"
	case engine.MsgNoEventsForBooking:
		return "📅 Пока нет доступных мероприятий для бронирования."
	case engine.MsgEventNotFound:
		return "❌ Мероприятие не найдено."
	case engine.MsgAskTickets:
		return fmt.Sprintf("🎫 Бронирование: %s\n📅 %s\n💰 Цена за билет: %.0f ₽\n\nСколько билетов вы хотите забронировать? (введите число)",
			out.Event.Title, formatDate(out.Event.Date), out.Event.BasePrice)
	case engine.MsgInvalidTickets:
		return "❌ Пожалуйста, введите корректное количество билетов (положительное число)."
	case engine.MsgAskNotes:
		return fmt.Sprintf("🎫 Билетов: %d\n💰 Общая стоимость: %.0f ₽\n\nЕсть ли у вас особые пожелания или комментарии? (напишите текст или нажмите 'Пропустить')",
			out.TicketsCount, out.TotalPrice)
	case engine.MsgAskName:
		return "👤 Введите ваше имя и фамилию:"
	case engine.MsgInvalidName:
		return "❌ Пожалуйста, введите корректное имя (минимум 2 символа)."
	case engine.MsgAskPhone:
		return "📞 Введите ваш номер телефона (например: +79991234567):"
	case engine.MsgInvalidPhone:
		return "❌ Пожалуйста, введите корректный номер телефона (начинается с +7 или 8)."
	case engine.MsgChoosePayment:
		return "💳 Выберите способ оплаты:"
	case engine.MsgBookingCreated:
		return formatBookingCreated(out.Booking)
	case engine.MsgBookingCreateFailed:
		return "❌ Произошла ошибка при создании брони. Попробуйте еще раз."

	case engine.MsgNoBookings:
		return "📋 У вас пока нет броней."
	case engine.MsgMyBooking:
		return formatBooking(out.Booking)
	case engine.MsgBookingNotFound:
		return "❌ Бронь не найдена."
	case engine.MsgOnlyPendingCancellable:
		return "❌ Можно отменить только ожидающие брони."
	case engine.MsgBookingCancelled:
		return fmt.Sprintf("✅ Бронь #%d отменена.", out.BookingID)

	case engine.MsgNoAttendedEvents:
		return "💬 У вас пока нет посещенных мероприятий для отзыва."
	case engine.MsgChooseFeedbackEvent:
		return "💬 Выберите мероприятие для отзыва:"
	case engine.MsgAskFeedbackText:
		return fmt.Sprintf("💬 Отзыв о мероприятии: %s\n📅 %s\n\nНапишите ваш отзыв (1-500 символов):",
			out.Event.Title, formatDate(out.Event.Date))
	case engine.MsgInvalidFeedbackText:
		return "❌ Отзыв должен содержать от 1 до 500 символов."
	case engine.MsgChooseRating:
		return "⭐ Оцените мероприятие от 1 до 5 звезд:"
	case engine.MsgFeedbackSaved:
		return fmt.Sprintf("✅ Спасибо за отзыв! Ваш отзыв сохранен под номером #%d", out.FeedbackID)
	case engine.MsgFeedbackSaveFailed:
		return "❌ Произошла ошибка при сохранении отзыва. Попробуйте еще раз."

	case engine.MsgAdminNoBookings:
		return "📋 Нет броней."
	case engine.MsgAdminBooking:
		return formatAdminBooking(out.Booking)
	case engine.MsgAdminNoEvents:
		return "📅 Нет мероприятий."
	case engine.MsgAdminEventList:
		var b strings.Builder
		b.WriteString("📅 Все мероприятия:\n\n")
		for _, event := range out.Events {
			fmt.Fprintf(&b, "ID: %d | %s\n\n", event.ID, formatEvent(event))
		}
		return strings.TrimRight(b.String(), "\n")
	case engine.MsgEventFeedbackUsage:
		return "❌ Использование: /event_feedback <event_id>"
	case engine.MsgEventFeedbackEmpty:
		return fmt.Sprintf("💬 Нет отзывов для мероприятия ID %d.", out.EventID)
	case engine.MsgEventFeedbackList:
		var b strings.Builder
		fmt.Fprintf(&b, "💬 Отзывы для мероприятия ID %d:\n\n", out.EventID)
		for _, feedback := range out.Feedback {
			rating := ""
			if feedback.Rating != nil {
				rating = fmt.Sprintf(" (⭐ %d)", *feedback.Rating)
			}
			fmt.Fprintf(&b, "👤 User ID: %d%s\n💬 %s\n📅 %s\n\n",
				feedback.UserID, rating, feedback.Text, formatDate(feedback.CreatedAt))
		}
		return strings.TrimRight(b.String(), "\n")
	case engine.MsgAdminConfirmed:
		return fmt.Sprintf("✅ Бронь #%d подтверждена.", out.BookingID)
	case engine.MsgAdminCancelled:
		return fmt.Sprintf("❌ Бронь #%d отменена администратором.", out.BookingID)
	case engine.MsgAdminNotPending:
		return "❌ Бронь уже обработана, действие не выполнено."

	case engine.MsgUserBookingConfirmed:
		return fmt.Sprintf("✅ Ваша бронь #%d подтверждена организатором!", out.BookingID)
	case engine.MsgUserBookingCancelled:
		return fmt.Sprintf("❌ Ваша бронь #%d была отменена организатором.", out.BookingID)
	}

	return "❓ Не понимаю. Используйте меню или команды."
}

// buttonLabel renders the caption for one inline-keyboard button.
func buttonLabel(button engine.Button) string {
	action := button.Action
	switch action.Kind {
	case engine.ActionFilterCategory:
		switch action.Category {
		case entity.CategoryConcert:
			return "🎵 Концерты"
		case entity.CategoryMovie:
			return "🎬 Фильмы"
		case entity.CategoryPlay:
			return "🎭 Спектакли"
		}
		return "🎪 Все"
	case engine.ActionSelectBookingEvent:
		if button.Event != nil {
			return fmt.Sprintf("%s - %s (%.0f₽)",
				button.Event.Title, formatDate(button.Event.Date), button.Event.BasePrice)
		}
		return labelBook
	case engine.ActionSelectFeedbackEvent:
		if button.Event != nil {
			return fmt.Sprintf("%s (%s)", button.Event.Title, formatDate(button.Event.Date))
		}
		return labelFeedback
	case engine.ActionCancelBooking:
		return "❌ Отменить бронь"
	case engine.ActionSelectPayment:
		if action.Payment == entity.PaymentMethodOnlineStub {
			return "💳 Онлайн (заглушка)"
		}
		return "💵 Наличными на месте"
	case engine.ActionSkipNotes:
		return "⏭️ Пропустить"
	case engine.ActionSelectRating:
		return fmt.Sprintf("%d⭐", action.Rating)
	case engine.ActionAdminConfirm:
		return "✅ Подтвердить"
	case engine.ActionAdminCancel:
		return "❌ Отменить"
	}
	return "…"
}

func eventListText(header string, events []*entity.Event) string {
	var b strings.Builder
	b.WriteString(header)
	for _, event := range events {
		b.WriteString(formatEvent(event))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
