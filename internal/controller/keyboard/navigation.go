package keyboard

import "github.com/go-telegram/bot/models"

// BackButton создаёт кнопку "Wstecz"
func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Wstecz", callbackData)
}

// CancelButton создаёт кнопку "Anuluj"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Anuluj", callbackData)
}

// ConfirmButton создаёт кнопку "Potwierdź"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Potwierdź", callbackData)
}

// ConfirmCancelButtons ряд с кнопками Potwierdź/Anuluj
func ConfirmCancelButtons(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

// PrevNextRow ряд навигации ⬅️ метка ➡️
func PrevNextRow(prevCallback, label, labelCallback, nextCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		Button("⬅️", prevCallback),
		Button(label, labelCallback),
		Button("➡️", nextCallback),
	}
}
