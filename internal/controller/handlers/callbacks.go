package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Префиксы callback data. Аргументы разделяются двоеточием.
const (
	CallbackNoop         = "noop"
	CallbackDay          = "day"     // day:2024-01-15
	CallbackWeek         = "week"    // week:2024-01-15
	CallbackLesson       = "lesson"  // lesson:<id>
	CallbackPayment      = "pay"     // pay:<id>:<studentID>
	CallbackDelete       = "del"     // del:<id>
	CallbackDeleteOK     = "delok"   // delok:<id>
	CallbackClearFilters = "fclear"  // fclear
	CallbackAddType      = "addtype" // addtype:group
	CallbackAddInst      = "addinst" // addinst:<instrumentID>
	CallbackAddTeacher   = "addtch"  // addtch:<teacherID> или addtch:- без учителя
	CallbackAddRoom      = "addroom" // addroom:<roomID>
	CallbackAddDuration  = "adddur"  // adddur:45
	CallbackAddFreq      = "addfreq" // addfreq:weekly или addfreq:once
	CallbackAddCancel    = "addcancel"
)

// NoValue аргумент "пропустить" в кнопках диалога
const NoValue = "-"

// CallbackData собирает callback data из префикса и аргументов
func CallbackData(prefix string, args ...string) string {
	if len(args) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(args, ":")
}

// ParseCallback разбирает callback data на префикс и ожидаемое число аргументов
func ParseCallback(data string, wantArgs int) (string, []string, error) {
	parts := strings.SplitN(data, ":", wantArgs+1)
	if len(parts) != wantArgs+1 {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	for _, p := range parts[1:] {
		if p == "" {
			return "", nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return parts[0], parts[1:], nil
}

func callbackPrefix(data string) string {
	if i := strings.IndexByte(data, ':'); i >= 0 {
		return data[:i]
	}
	return data
}

// HandleCallbackQuery распределяет нажатия inline кнопок по обработчикам
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callback := update.CallbackQuery

	h.logger.Info("Routing callback",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch callbackPrefix(callback.Data) {
	case CallbackNoop:
		answerCallback(ctx, b, callback.ID, "")
	case CallbackDay:
		h.handleDayCallback(ctx, b, callback)
	case CallbackWeek:
		h.handleWeekCallback(ctx, b, callback)
	case CallbackLesson:
		h.handleLessonCallback(ctx, b, callback)
	case CallbackPayment:
		h.handlePaymentCallback(ctx, b, callback)
	case CallbackDelete:
		h.handleDeleteCallback(ctx, b, callback)
	case CallbackDeleteOK:
		h.handleDeleteConfirmCallback(ctx, b, callback)
	case CallbackClearFilters:
		h.handleClearFiltersCallback(ctx, b, callback)
	case CallbackAddType, CallbackAddInst, CallbackAddTeacher, CallbackAddRoom,
		CallbackAddDuration, CallbackAddFreq, CallbackAddCancel:
		h.handleAddLessonCallback(ctx, b, callback)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", callback.Data))
		answerCallback(ctx, b, callback.ID, "")
	}
}

// fail логирует ошибку и показывает её пользователю во всплывающем окне
func (h *Handlers) fail(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, msg string, err error) {
	h.logger.Error(msg,
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
		zap.Error(err))
	answerCallbackAlert(ctx, b, callback.ID, ErrorMessage(err))
}
