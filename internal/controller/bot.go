package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/state"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

type BotController struct {
	bot          *bot.Bot
	handlers     *handlers.Handlers
	stateManager *state.Manager
	lessons      *service.LessonService
	logger       *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	lessons *service.LessonService,
	catalog *service.CatalogService,
	weekStart time.Weekday,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	return &BotController{
		bot:          botInstance,
		handlers:     handlers.NewHandlers(lessons, catalog, stateManager, weekStart, logger),
		stateManager: stateManager,
		lessons:      lessons,
		logger:       logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Точные команды регистрируем раньше префиксных: /filters раньше /filter
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/filters", bot.MatchTypeExact, c.handlers.HandleFilters)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clearfilters", bot.MatchTypeExact, c.handlers.HandleClearFilters)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addlesson", bot.MatchTypeExact, c.handlers.HandleAddLessonStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/subscribe", bot.MatchTypeExact, c.handlers.HandleSubscribe)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unsubscribe", bot.MatchTypeExact, c.handlers.HandleUnsubscribe)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/day", bot.MatchTypePrefix, c.handlers.HandleDay)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/filter", bot.MatchTypePrefix, c.handlers.HandleFilter)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unfilter", bot.MatchTypePrefix, c.handlers.HandleUnfilter)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypePrefix, c.handlers.HandleSearch)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "today", Description: "📅 Plan zajęć na dziś"},
		{Command: "day", Description: "📆 Plan na dzień (np. /day 15.01.2024)"},
		{Command: "week", Description: "🗓 Grafik tygodnia"},
		{Command: "search", Description: "🔍 Szukaj zajęć"},
		{Command: "addlesson", Description: "➕ Dodaj zajęcia"},
		{Command: "filters", Description: "🔎 Aktywne filtry"},
		{Command: "clearfilters", Description: "🧹 Wyczyść filtry"},
		{Command: "subscribe", Description: "🔔 Codzienny plan"},
		{Command: "unsubscribe", Description: "🔕 Wyłącz codzienny plan"},
		{Command: "help", Description: "❓ Pomoc"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}

// SendDailyDigest рассылает расписание на день всем подписанным чатам с их фильтрами
func (c *BotController) SendDailyDigest(ctx context.Context, day model.Date) error {
	subscribers := c.stateManager.Subscribers()
	c.logger.Info("Sending digest",
		zap.String("day", day.String()),
		zap.Int("subscribers", len(subscribers)))

	var errs []error
	for _, chatID := range subscribers {
		filters := c.stateManager.Filters(chatID)
		lessons, err := c.lessons.DaySchedule(ctx, day, filters, "")
		if err != nil {
			return fmt.Errorf("day schedule: %w", err)
		}

		_, err = c.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      "☀️ Dzień dobry!\n\n" + formatting.FormatDaySchedule(day, lessons, filters),
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			c.logger.Warn("Failed to send digest",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	return errors.Join(errs...)
}
