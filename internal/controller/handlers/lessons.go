package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/keyboard"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/render"
)

// dayScreen текст и клавиатура расписания на день с фильтрами чата
func (h *Handlers) dayScreen(ctx context.Context, chatID int64, day model.Date) (string, *models.InlineKeyboardMarkup, error) {
	filters := h.stateManager.Filters(chatID)
	lessons, err := h.lessons.DaySchedule(ctx, day, filters, "")
	if err != nil {
		return "", nil, err
	}

	kb := keyboard.NewBuilder()
	for _, l := range lessons {
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s %s", l.StartTime, l.Summary()),
			CallbackData(CallbackLesson, l.ID)))
	}
	kb.Row(DayNavigationRow(day, h.lessons.Today())...)
	kb.Row(keyboard.Button("🗓 Tydzień", CallbackData(CallbackWeek, day.String())))
	if filters.HasActive() {
		kb.Row(keyboard.Button("🧹 Wyczyść filtry", CallbackData(CallbackClearFilters)))
	}

	return formatting.FormatDaySchedule(day, lessons, filters), kb.Build(), nil
}

// DayNavigationRow ряд ⬅️ Dziś ➡️ для перехода между днями
func DayNavigationRow(day, today model.Date) []models.InlineKeyboardButton {
	return keyboard.PrevNextRow(
		CallbackData(CallbackDay, day.AddDays(-1).String()),
		"📍 Dziś",
		CallbackData(CallbackDay, today.String()),
		CallbackData(CallbackDay, day.AddDays(1).String()),
	)
}

// showDay отправляет новое сообщение с расписанием на день
func (h *Handlers) showDay(ctx context.Context, b *bot.Bot, chatID int64, day model.Date) {
	text, kb, err := h.dayScreen(ctx, chatID, day)
	if err != nil {
		h.logger.Error("Failed to build day schedule",
			zap.Int64("chat_id", chatID),
			zap.String("day", day.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}
	h.sendHTML(ctx, b, chatID, text, kb)
}

func (h *Handlers) handleDayCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid day callback", err)
		return
	}
	day, err := model.ParseDate(args[0])
	if err != nil {
		h.fail(ctx, b, callback, "Invalid day in callback", err)
		return
	}

	text, kb, err := h.dayScreen(ctx, callbackChatID(callback), day)
	if err != nil {
		h.fail(ctx, b, callback, "Failed to build day schedule", err)
		return
	}
	h.editHTML(ctx, b, callback, text, kb)
	answerCallback(ctx, b, callback.ID, "")
}

// lessonScreen карточка занятия с отметками оплаты и удалением
func (h *Handlers) lessonScreen(ctx context.Context, id string) (string, *models.InlineKeyboardMarkup, error) {
	lesson, err := h.lessons.GetLesson(ctx, id)
	if err != nil {
		return "", nil, err
	}

	text := formatting.FormatLesson(lesson, h.lessons.PaymentSummary(lesson), h.catalog.StudentNames)

	kb := keyboard.NewBuilder()
	names := h.catalog.StudentNames(lesson.Students)
	for i, studentID := range lesson.Students {
		data := CallbackData(CallbackPayment, lesson.ID, studentID)
		if len(data) > MaxCallbackDataLength {
			continue
		}
		mark := "💳"
		if lesson.StudentPayments[studentID] {
			mark = "↩️"
		}
		kb.Row(keyboard.Button(mark+" "+names[i], data))
	}
	kb.Row(
		keyboard.BackButton(CallbackData(CallbackDay, lesson.Day().String())),
		keyboard.Button("🗑 Usuń", CallbackData(CallbackDelete, lesson.ID)),
	)

	return text, kb.Build(), nil
}

func (h *Handlers) handleLessonCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid lesson callback", err)
		return
	}

	text, kb, err := h.lessonScreen(ctx, args[0])
	if err != nil {
		h.fail(ctx, b, callback, "Failed to load lesson", err)
		return
	}
	h.editHTML(ctx, b, callback, text, kb)
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) handlePaymentCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 2)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid payment callback", err)
		return
	}

	lesson, err := h.lessons.TogglePayment(ctx, args[0], args[1])
	if err != nil {
		h.fail(ctx, b, callback, "Failed to toggle payment", err)
		return
	}

	text, kb, err := h.lessonScreen(ctx, lesson.ID)
	if err != nil {
		h.fail(ctx, b, callback, "Failed to reload lesson", err)
		return
	}
	h.editHTML(ctx, b, callback, text, kb)

	if lesson.StudentPayments[args[1]] {
		answerCallback(ctx, b, callback.ID, "✅ Oznaczono jako opłacone")
	} else {
		answerCallback(ctx, b, callback.ID, "↩️ Cofnięto opłatę")
	}
}

func (h *Handlers) handleDeleteCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid delete callback", err)
		return
	}

	lesson, err := h.lessons.GetLesson(ctx, args[0])
	if err != nil {
		h.fail(ctx, b, callback, "Failed to load lesson", err)
		return
	}

	text := fmt.Sprintf("🗑 Usunąć zajęcia?\n\n%s\n\nUsuwany jest tylko ten termin, pozostałe z serii zostają.",
		formatting.FormatLessonLine(lesson))
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelButtons(
			CallbackData(CallbackDeleteOK, lesson.ID),
			CallbackData(CallbackLesson, lesson.ID))...).
		Build()

	h.editHTML(ctx, b, callback, text, kb)
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) handleDeleteConfirmCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid delete confirmation", err)
		return
	}

	lesson, err := h.lessons.GetLesson(ctx, args[0])
	if err != nil {
		h.fail(ctx, b, callback, "Failed to load lesson", err)
		return
	}
	if err := h.lessons.DeleteLesson(ctx, lesson.ID); err != nil {
		h.fail(ctx, b, callback, "Failed to delete lesson", err)
		return
	}

	text, kb, err := h.dayScreen(ctx, callbackChatID(callback), lesson.Day())
	if err != nil {
		h.fail(ctx, b, callback, "Failed to build day schedule", err)
		return
	}
	h.editHTML(ctx, b, callback, text, kb)
	answerCallback(ctx, b, callback.ID, "🗑 Usunięto")
}

// sendWeek отправляет картинку недели с подписью и навигацией
func (h *Handlers) sendWeek(ctx context.Context, b *bot.Bot, chatID int64, day model.Date) error {
	days := calendar.DaysInView(calendar.ViewWeek, day, h.weekStart)
	byDay, err := h.lessons.LessonsForDays(ctx, days, h.stateManager.Filters(chatID))
	if err != nil {
		return err
	}

	title := calendar.RangeLabel(calendar.ViewWeek, day, h.weekStart)
	kb := keyboard.NewBuilder().
		Row(keyboard.PrevNextRow(
			CallbackData(CallbackWeek, calendar.Navigate(calendar.ViewWeek, day, -1).String()),
			"📅 Dzień",
			CallbackData(CallbackDay, days[0].String()),
			CallbackData(CallbackWeek, calendar.Navigate(calendar.ViewWeek, day, 1).String()),
		)...).
		Build()

	image, err := render.WeekImage(day, byDay, render.WeekOptions{
		FirstWeekday: h.weekStart,
		Today:        h.lessons.Today(),
		Now:          h.now().In(h.lessons.Location()),
	})
	if err != nil {
		// Без картинки показываем неделю текстом
		h.logger.Warn("Failed to render week image, sending text",
			zap.Int64("chat_id", chatID),
			zap.String("day", day.String()),
			zap.Error(err))
		h.sendHTML(ctx, b, chatID, formatting.FormatWeek(title, days, byDay), kb)
		return nil
	}

	total := 0
	for _, d := range days {
		total += len(byDay[d])
	}
	caption := fmt.Sprintf("🗓 <b>%s</b>\n%d %s", title, total, formatting.PluralizeLessons(total))

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	return err
}

func (h *Handlers) handleWeekCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid week callback", err)
		return
	}
	day, err := model.ParseDate(args[0])
	if err != nil {
		h.fail(ctx, b, callback, "Invalid week date", err)
		return
	}

	chatID := callbackChatID(callback)
	if err := h.sendWeek(ctx, b, chatID, day); err != nil {
		h.fail(ctx, b, callback, "Failed to send week image", err)
		return
	}

	// Удаляем старое сообщение, чтобы навигация не копила картинки
	if msg := messageFromCallback(callback); msg != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
		})
	}
	answerCallback(ctx, b, callback.ID, "")
}
