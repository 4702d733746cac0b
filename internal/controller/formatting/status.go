package formatting

import "github.com/Freeeeeet/music_school_scheduler/internal/model"

// PaymentStatusDisplay представляет отображение статуса оплаты
type PaymentStatusDisplay struct {
	Emoji string
	Text  string
}

// GetPaymentStatusDisplay возвращает emoji и текст для статуса оплаты занятия
func GetPaymentStatusDisplay(state model.PaymentState) PaymentStatusDisplay {
	displays := map[model.PaymentState]PaymentStatusDisplay{
		model.PaymentFullyPaid:  {"🟢", "Opłacone"},
		model.PaymentPartial:    {"🟡", "Częściowo opłacone"},
		model.PaymentUnpaid:     {"🔴", "Nieopłacone"},
		model.PaymentNoStudents: {"⚪️", "Brak uczniów"},
	}

	if display, ok := displays[state]; ok {
		return display
	}

	return PaymentStatusDisplay{"❓", "Nieznany"}
}

// FormatPaymentStatus "🟡 1/3 opłacone"
func FormatPaymentStatus(status model.PaymentStatus) string {
	display := GetPaymentStatusDisplay(status.State())
	if status.Total == 0 {
		return display.Emoji + " " + display.Text
	}
	return display.Emoji + " " + itoa(status.Paid) + "/" + itoa(status.Total) + " opłacone"
}
