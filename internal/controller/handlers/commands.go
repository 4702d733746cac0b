package handlers

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/keyboard"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/state"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

const helpText = "Dostępne komendy:\n" +
	"/today - Plan zajęć na dziś\n" +
	"/day 15.01.2024 - Plan na wybrany dzień\n" +
	"/week - Tydzień w formie grafiku\n" +
	"/search fortepian - Szukaj zajęć\n" +
	"/addlesson - Dodaj zajęcia\n\n" +
	"Filtry:\n" +
	"/filters - Aktywne filtry\n" +
	"/filter teacher Anna Kowalska - Dodaj filtr (teacher, room, instrument, type)\n" +
	"/unfilter teacher Anna Kowalska - Usuń filtr\n" +
	"/clearfilters - Wyczyść filtry\n\n" +
	"/subscribe - Codzienny plan zajęć rano\n" +
	"/unsubscribe - Wyłącz codzienny plan\n" +
	"/cancel - Przerwij bieżącą operację"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := ""
	if update.Message.From != nil {
		name = update.Message.From.FirstName
	}

	h.logger.Info("User started bot",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("first_name", name))

	text := fmt.Sprintf("👋 Cześć, %s!\n\n"+
		"To jest grafik szkoły muzycznej: plan zajęć, opłaty uczniów i dodawanie lekcji.\n\n%s",
		name, helpText)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "❓ Pomoc\n\n" + helpText,
	})
}

// HandleToday показывает расписание на сегодня
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, h.lessons.Today())
}

// HandleDay показывает расписание на день из аргумента: /day 15.01.2024
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	day, err := h.parseDay(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}
	h.showDay(ctx, b, chatID, day)
}

// HandleWeek отправляет картинку недели: /week или /week 15.01.2024
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	day, err := h.parseDay(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	if err := h.sendWeek(ctx, b, chatID, day); err != nil {
		h.logger.Error("Failed to send week",
			zap.Int64("chat_id", chatID),
			zap.String("day", day.String()),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
	}
}

// parseDay дата из текста; пусто или "dziś" - сегодня
func (h *Handlers) parseDay(arg string) (model.Date, error) {
	switch strings.ToLower(arg) {
	case "", "dziś", "dzis":
		return h.lessons.Today(), nil
	case "jutro":
		return h.lessons.Today().AddDays(1), nil
	}
	return model.ParseDate(arg)
}

// HandleCancel отменяет текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(chatID) == state.StateNone {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "Nie ma nic do anulowania.",
		})
		return
	}

	h.stateManager.ClearState(chatID)
	h.logger.Info("Dialog cancelled", zap.Int64("chat_id", chatID))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "❌ Anulowano.",
	})
}

// HandleSubscribe включает ежедневную рассылку расписания
func (h *Handlers) HandleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.stateManager.Subscribe(chatID, true)

	h.logger.Info("Chat subscribed to digest", zap.Int64("chat_id", chatID))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔔 Codziennie rano wyślę plan zajęć (z uwzględnieniem Twoich filtrów).",
	})
}

// HandleUnsubscribe выключает ежедневную рассылку
func (h *Handlers) HandleUnsubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.stateManager.Subscribe(chatID, false)

	h.logger.Info("Chat unsubscribed from digest", zap.Int64("chat_id", chatID))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🔕 Codzienny plan wyłączony.",
	})
}

// HandleSearch ищет занятия: /search текст. Без текста спрашивает, что искать.
func (h *Handlers) HandleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	term := commandArgs(update.Message.Text)
	if term == "" {
		h.stateManager.ClearState(chatID)
		h.stateManager.SetState(chatID, state.StateSearch)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "🔍 Czego szukać? Nazwisko nauczyciela, instrument albo tytuł zajęć.\n\nAby anulować: /cancel",
		})
		return
	}
	h.showSearch(ctx, b, chatID, term)
}

// showSearch показывает ближайшие занятия, подходящие под строку поиска и фильтры чата
func (h *Handlers) showSearch(ctx context.Context, b *bot.Bot, chatID int64, term string) {
	lessons, err := h.lessons.ListLessons(ctx, h.stateManager.Filters(chatID), term)
	if err != nil {
		h.logger.Error("Failed to search lessons",
			zap.Int64("chat_id", chatID),
			zap.String("term", term),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	upcoming := UpcomingLessons(lessons, h.lessons.Today(), MaxSearchResults)

	h.logger.Info("Search completed",
		zap.Int64("chat_id", chatID),
		zap.String("term", term),
		zap.Int("found", len(lessons)),
		zap.Int("shown", len(upcoming)))

	if len(upcoming) == 0 {
		h.sendHTML(ctx, b, chatID, fmt.Sprintf("🔍 Brak nadchodzących zajęć dla „%s”.", html.EscapeString(term)), nil)
		return
	}

	kb := keyboard.NewBuilder()
	for _, l := range upcoming {
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s %s %s", formatting.FormatDate(l.Day()), l.StartTime, l.Summary()),
			CallbackData(CallbackLesson, l.ID)))
	}

	text := fmt.Sprintf("🔍 Wyniki dla „%s”: %d %s",
		html.EscapeString(term), len(upcoming), formatting.PluralizeLessons(len(upcoming)))
	h.sendHTML(ctx, b, chatID, text, kb.Build())
}

// UpcomingLessons занятия начиная с from по возрастанию начала, не больше limit
func UpcomingLessons(lessons []model.Lesson, from model.Date, limit int) []model.Lesson {
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if !l.Day().Before(from) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Day(), out[j].Day()
		if di != dj {
			return di.Before(dj)
		}
		return out[i].StartTime < out[j].StartTime
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	currentState := h.stateManager.GetState(chatID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		return
	case state.StateSearch:
		h.stateManager.ClearState(chatID)
		h.showSearch(ctx, b, chatID, strings.TrimSpace(update.Message.Text))
	case state.StateAddLessonDate:
		h.handleAddLessonDateStep(ctx, b, update)
	case state.StateAddLessonTime:
		h.handleAddLessonTimeStep(ctx, b, update)
	case state.StateAddLessonCount:
		h.handleAddLessonCountStep(ctx, b, update)
	default:
		h.sendError(ctx, b, chatID, "👆 Wybierz opcję przyciskiem powyżej albo /cancel")
	}
}
