package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/keyboard"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// filterAliases польские и английские названия категорий фильтра
var filterAliases = map[string]model.FilterCategory{
	"teacher":    model.FilterTeacher,
	"nauczyciel": model.FilterTeacher,
	"room":       model.FilterRoom,
	"sala":       model.FilterRoom,
	"instrument": model.FilterInstrument,
	"type":       model.FilterLessonType,
	"typ":        model.FilterLessonType,
}

// ParseFilterArgs разбирает "teacher Anna Kowalska" на категорию и значение
func ParseFilterArgs(args string) (model.FilterCategory, string, error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("%w: expected <category> <value>", ErrInvalidFormat)
	}

	category, ok := filterAliases[strings.ToLower(parts[0])]
	if !ok {
		return "", "", fmt.Errorf("%w: unknown filter category %q", ErrInvalidFormat, parts[0])
	}
	return category, strings.TrimSpace(parts[1]), nil
}

// resolveFilterValue приводит значение к имени из справочника, чтобы фильтр совпадал с занятиями
func (h *Handlers) resolveFilterValue(category model.FilterCategory, value string) (string, bool) {
	var known []string
	switch category {
	case model.FilterTeacher:
		for _, t := range h.catalog.Teachers() {
			known = append(known, t.Name)
		}
	case model.FilterRoom:
		for _, r := range h.catalog.Rooms() {
			known = append(known, r.Name)
		}
	case model.FilterInstrument:
		for _, i := range h.catalog.Instruments() {
			known = append(known, i.Name)
		}
	case model.FilterLessonType:
		for _, t := range model.AllLessonTypes() {
			if strings.EqualFold(string(t), value) || strings.EqualFold(t.Label(), value) {
				return string(t), true
			}
		}
		return "", false
	}

	for _, k := range known {
		if strings.EqualFold(k, value) {
			return k, true
		}
	}
	return "", false
}

// HandleFilters показывает активные фильтры чата
func (h *Handlers) HandleFilters(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.sendHTML(ctx, b, chatID, formatting.FormatFilters(h.stateManager.Filters(chatID)), filtersKeyboard(h.stateManager.Filters(chatID)))
}

// HandleFilter добавляет значение фильтра: /filter room Sala 1
func (h *Handlers) HandleFilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.changeFilter(ctx, b, update, true)
}

// HandleUnfilter убирает значение фильтра: /unfilter room Sala 1
func (h *Handlers) HandleUnfilter(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.changeFilter(ctx, b, update, false)
}

func (h *Handlers) changeFilter(ctx context.Context, b *bot.Bot, update *models.Update, add bool) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	category, raw, err := ParseFilterArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Użycie: /filter <teacher|room|instrument|type> <wartość>")
		return
	}

	value, ok := h.resolveFilterValue(category, raw)
	if !ok {
		if !add {
			value = raw
		} else {
			h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Nie znaleziono „%s” w kategorii %s", raw, category))
			return
		}
	}

	filters, err := h.stateManager.UpdateFilters(chatID, func(f *model.FilterSet) error {
		if add {
			return f.Add(category, value)
		}
		return f.Remove(category, value)
	})
	if err != nil {
		h.logger.Error("Failed to update filters",
			zap.Int64("chat_id", chatID),
			zap.String("category", string(category)),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	h.logger.Info("Filters updated",
		zap.Int64("chat_id", chatID),
		zap.String("category", string(category)),
		zap.String("value", value),
		zap.Bool("add", add),
		zap.Int("active", filters.Count()))

	h.sendHTML(ctx, b, chatID, formatting.FormatFilters(filters), filtersKeyboard(filters))
}

// HandleClearFilters снимает все фильтры чата
func (h *Handlers) HandleClearFilters(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	h.clearFilters(chatID)
	h.sendHTML(ctx, b, chatID, formatting.FormatFilters(model.FilterSet{}), nil)
}

func (h *Handlers) handleClearFiltersCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.clearFilters(callbackChatID(callback))
	h.editHTML(ctx, b, callback, formatting.FormatFilters(model.FilterSet{}), keyboard.NewBuilder().
		Row(keyboard.Button("📅 Plan na dziś", CallbackData(CallbackDay, h.lessons.Today().String()))).
		Build())
	answerCallback(ctx, b, callback.ID, "🧹 Filtry wyczyszczone")
}

func (h *Handlers) clearFilters(chatID int64) {
	h.stateManager.UpdateFilters(chatID, func(f *model.FilterSet) error {
		f.Clear()
		return nil
	})
	h.logger.Info("Filters cleared", zap.Int64("chat_id", chatID))
}

func filtersKeyboard(f model.FilterSet) *models.InlineKeyboardMarkup {
	if !f.HasActive() {
		return nil
	}
	return keyboard.NewBuilder().
		Row(keyboard.Button("🧹 Wyczyść filtry", CallbackData(CallbackClearFilters))).
		Build()
}
