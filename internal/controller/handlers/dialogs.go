package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/formatting"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/keyboard"
	"github.com/Freeeeeet/music_school_scheduler/internal/controller/state"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

const cancelHint = "\n\nAby anulować: /cancel"

// HandleAddLessonStart начинает диалог добавления занятия
func (h *Handlers) HandleAddLessonStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	h.stateManager.ClearState(chatID)
	h.stateManager.SetState(chatID, state.StateAddLessonType)
	h.stateManager.SetData(chatID, state.KeyLessonInput, &service.LessonInput{
		Duration:  DefaultLessonDuration,
		PriceType: model.PriceTypeTotal,
	})

	h.logger.Info("Starting lesson creation", zap.Int64("chat_id", chatID))

	h.sendHTML(ctx, b, chatID, "➕ <b>Nowe zajęcia</b>\n\nKrok 1: wybierz typ zajęć"+cancelHint, lessonTypeKeyboard())
}

func lessonTypeKeyboard() *models.InlineKeyboardMarkup {
	buttons := make([]models.InlineKeyboardButton, 0, len(model.AllLessonTypes()))
	for _, t := range model.AllLessonTypes() {
		buttons = append(buttons, keyboard.Button(t.Label(), CallbackData(CallbackAddType, string(t))))
	}
	return keyboard.NewBuilder().
		Grid(2, buttons...).
		Row(keyboard.CancelButton(CallbackAddCancel)).
		Build()
}

// draft черновик занятия текущего диалога
func (h *Handlers) draft(chatID int64) (*service.LessonInput, error) {
	v, ok := h.stateManager.GetData(chatID, state.KeyLessonInput)
	if !ok {
		return nil, ErrNoDraft
	}
	in, ok := v.(*service.LessonInput)
	if !ok || in == nil {
		return nil, ErrNoDraft
	}
	return in, nil
}

// expectedStep шаг диалога, на котором принимается callback с данным префиксом
var expectedStep = map[string]state.UserState{
	CallbackAddType:     state.StateAddLessonType,
	CallbackAddInst:     state.StateAddLessonInstrument,
	CallbackAddTeacher:  state.StateAddLessonTeacher,
	CallbackAddRoom:     state.StateAddLessonRoom,
	CallbackAddDuration: state.StateAddLessonDuration,
	CallbackAddFreq:     state.StateAddLessonRecurrence,
}

// handleAddLessonCallback кнопки диалога добавления занятия
func (h *Handlers) handleAddLessonCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	chatID := callbackChatID(callback)

	if callback.Data == CallbackAddCancel {
		h.stateManager.ClearState(chatID)
		h.editHTML(ctx, b, callback, "❌ Dodawanie zajęć anulowane.", nil)
		answerCallback(ctx, b, callback.ID, "")
		return
	}

	prefix, args, err := ParseCallback(callback.Data, 1)
	if err != nil {
		h.fail(ctx, b, callback, "Invalid add lesson callback", err)
		return
	}

	in, err := h.draft(chatID)
	if err != nil || h.stateManager.GetState(chatID) != expectedStep[prefix] {
		h.fail(ctx, b, callback, "Stale add lesson callback", ErrNoDraft)
		return
	}

	switch prefix {
	case CallbackAddType:
		h.addLessonType(ctx, b, callback, in, args[0])
	case CallbackAddInst:
		h.addLessonInstrument(ctx, b, callback, in, args[0])
	case CallbackAddTeacher:
		h.addLessonTeacher(ctx, b, callback, in, args[0])
	case CallbackAddRoom:
		h.addLessonRoom(ctx, b, callback, in, args[0])
	case CallbackAddDuration:
		h.addLessonDuration(ctx, b, callback, in, args[0])
	case CallbackAddFreq:
		h.addLessonFrequency(ctx, b, callback, in, args[0])
	}
}

func (h *Handlers) addLessonType(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, value string) {
	t := model.LessonType(value)
	if !t.Valid() {
		h.fail(ctx, b, callback, "Unknown lesson type", ErrInvalidFormat)
		return
	}
	in.Type = t
	chatID := callbackChatID(callback)

	buttons := make([]models.InlineKeyboardButton, 0)
	for _, inst := range h.catalog.Instruments() {
		if !inst.Available {
			continue
		}
		buttons = append(buttons, keyboard.Button(inst.Name, CallbackData(CallbackAddInst, inst.ID)))
	}

	h.stateManager.SetState(chatID, state.StateAddLessonInstrument)
	h.editHTML(ctx, b, callback,
		fmt.Sprintf("✅ Typ: %s\n\nKrok 2: wybierz instrument", t.Label()),
		keyboard.NewBuilder().Grid(3, buttons...).Row(keyboard.CancelButton(CallbackAddCancel)).Build())
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) addLessonInstrument(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, id string) {
	var name string
	for _, inst := range h.catalog.Instruments() {
		if inst.ID == id {
			name = inst.Name
		}
	}
	if name == "" {
		h.fail(ctx, b, callback, "Unknown instrument", ErrInvalidFormat)
		return
	}
	in.Instrument = name
	chatID := callbackChatID(callback)

	buttons := make([]models.InlineKeyboardButton, 0)
	for _, t := range h.catalog.AvailableTeachers(name) {
		if t.Available {
			buttons = append(buttons, keyboard.Button(t.Name, CallbackData(CallbackAddTeacher, t.ID)))
		}
	}
	if in.Type == model.LessonTypePracticeRoom {
		buttons = append(buttons, keyboard.Button("Bez nauczyciela", CallbackData(CallbackAddTeacher, NoValue)))
	}

	text := fmt.Sprintf("✅ Instrument: %s\n\nKrok 3: wybierz nauczyciela", name)
	if len(buttons) == 0 {
		text = fmt.Sprintf("✅ Instrument: %s\n\n⚠️ Brak dostępnych nauczycieli dla tego instrumentu.", name)
	}

	h.stateManager.SetState(chatID, state.StateAddLessonTeacher)
	h.editHTML(ctx, b, callback, text,
		keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(CallbackAddCancel)).Build())
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) addLessonTeacher(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, id string) {
	in.Teacher = ""
	if id != NoValue {
		for _, t := range h.catalog.Teachers() {
			if t.ID == id {
				in.Teacher = t.Name
			}
		}
		if in.Teacher == "" {
			h.fail(ctx, b, callback, "Unknown teacher", ErrInvalidFormat)
			return
		}
	}
	chatID := callbackChatID(callback)

	if in.Type.Online() {
		h.askDate(ctx, b, callback, "✅ Zajęcia online, bez sali")
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0)
	for _, r := range h.catalog.AvailableRooms(in.Type, in.Instrument) {
		if r.Available {
			buttons = append(buttons, keyboard.Button(
				fmt.Sprintf("%s (%d os.)", r.Name, r.Capacity),
				CallbackData(CallbackAddRoom, r.ID)))
		}
	}
	if in.Type != model.LessonTypePracticeRoom {
		buttons = append(buttons, keyboard.Button("Bez sali", CallbackData(CallbackAddRoom, NoValue)))
	}

	teacher := in.Teacher
	if teacher == "" {
		teacher = "bez nauczyciela"
	}

	h.stateManager.SetState(chatID, state.StateAddLessonRoom)
	h.editHTML(ctx, b, callback,
		fmt.Sprintf("✅ Nauczyciel: %s\n\nKrok 4: wybierz salę", teacher),
		keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(CallbackAddCancel)).Build())
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) addLessonRoom(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, id string) {
	in.Room = ""
	if id != NoValue {
		for _, r := range h.catalog.Rooms() {
			if r.ID == id {
				in.Room = r.Name
			}
		}
		if in.Room == "" {
			h.fail(ctx, b, callback, "Unknown room", ErrInvalidFormat)
			return
		}
	}

	room := in.Room
	if room == "" {
		room = "bez sali"
	}
	h.askDate(ctx, b, callback, "✅ Sala: "+room)
}

func (h *Handlers) askDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, done string) {
	h.stateManager.SetState(callbackChatID(callback), state.StateAddLessonDate)
	h.editHTML(ctx, b, callback,
		done+"\n\nKrok 5: podaj datę, np. "+formatting.FormatDate(h.lessons.Today())+" albo „dziś”"+cancelHint,
		nil)
	answerCallback(ctx, b, callback.ID, "")
}

// handleAddLessonDateStep обрабатывает ввод даты
func (h *Handlers) handleAddLessonDateStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	in, err := h.draft(chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	day, err := h.parseDay(strings.TrimSpace(update.Message.Text))
	if err != nil {
		h.logger.Warn("Invalid lesson date",
			zap.Int64("chat_id", chatID),
			zap.String("text", update.Message.Text))
		h.sendError(ctx, b, chatID, ErrorMessage(err)+"\n\nSpróbuj ponownie:")
		return
	}
	in.Date = day

	h.stateManager.SetState(chatID, state.StateAddLessonTime)
	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("✅ Data: %s\n\nKrok 6: podaj godzinę rozpoczęcia, np. 9:00 albo 17:30%s",
			formatting.FormatDateWithWeekday(day), cancelHint),
		nil)
}

// handleAddLessonTimeStep обрабатывает ввод времени начала
func (h *Handlers) handleAddLessonTimeStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	in, err := h.draft(chatID)
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err))
		return
	}

	start, err := model.ParseClock(strings.TrimSpace(update.Message.Text))
	if err != nil {
		h.sendError(ctx, b, chatID, ErrorMessage(err)+"\n\nSpróbuj ponownie:")
		return
	}
	in.StartTime = start.String()

	buttons := make([]models.InlineKeyboardButton, 0, len(LessonDurations))
	for _, d := range LessonDurations {
		buttons = append(buttons, keyboard.Button(formatting.FormatDuration(d), CallbackData(CallbackAddDuration, strconv.Itoa(d))))
	}

	h.stateManager.SetState(chatID, state.StateAddLessonDuration)
	h.sendHTML(ctx, b, chatID,
		fmt.Sprintf("✅ Początek: %s\n\nKrok 7: wybierz czas trwania", start),
		keyboard.NewBuilder().Grid(3, buttons...).Row(keyboard.CancelButton(CallbackAddCancel)).Build())
}

func (h *Handlers) addLessonDuration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, value string) {
	minutes, err := strconv.Atoi(value)
	if err != nil || minutes <= 0 {
		h.fail(ctx, b, callback, "Invalid duration", ErrInvalidFormat)
		return
	}
	in.Duration = minutes

	buttons := []models.InlineKeyboardButton{
		keyboard.Button("Jednorazowo", CallbackData(CallbackAddFreq, "once")),
	}
	for _, f := range model.AllFrequencies() {
		buttons = append(buttons, keyboard.Button(f.Label(), CallbackData(CallbackAddFreq, string(f))))
	}

	h.stateManager.SetState(callbackChatID(callback), state.StateAddLessonRecurrence)
	h.editHTML(ctx, b, callback,
		fmt.Sprintf("✅ Czas trwania: %s\n\nKrok 8: czy zajęcia się powtarzają?", formatting.FormatDuration(minutes)),
		keyboard.NewBuilder().Grid(2, buttons...).Row(keyboard.CancelButton(CallbackAddCancel)).Build())
	answerCallback(ctx, b, callback.ID, "")
}

func (h *Handlers) addLessonFrequency(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, in *service.LessonInput, value string) {
	chatID := callbackChatID(callback)

	if value == "once" {
		in.Recurrence = nil
		answerCallback(ctx, b, callback.ID, "")
		h.finishAddLesson(ctx, b, chatID, in)
		return
	}

	f := model.RecurrenceFrequency(value)
	if !f.Valid() {
		h.fail(ctx, b, callback, "Unknown frequency", ErrInvalidFormat)
		return
	}
	in.Recurrence = &model.RecurrencePolicy{Frequency: f}

	h.stateManager.SetState(chatID, state.StateAddLessonCount)
	h.editHTML(ctx, b, callback,
		fmt.Sprintf("✅ Powtarzanie: %s\n\nKrok 9: ile terminów utworzyć? (1-%d)%s",
			f.Label(), schedule.MaxOccurrences, cancelHint),
		nil)
	answerCallback(ctx, b, callback.ID, "")
}

// handleAddLessonCountStep обрабатывает ввод количества повторений
func (h *Handlers) handleAddLessonCountStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	in, err := h.draft(chatID)
	if err != nil || in.Recurrence == nil {
		h.sendError(ctx, b, chatID, ErrorMessage(ErrNoDraft))
		return
	}

	count, err := strconv.Atoi(strings.TrimSpace(update.Message.Text))
	if err != nil || count < 1 || count > schedule.MaxOccurrences {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Podaj liczbę od 1 do %d.\n\nSpróbuj ponownie:", schedule.MaxOccurrences))
		return
	}
	in.Recurrence.Count = count

	h.finishAddLesson(ctx, b, chatID, in)
}

// finishAddLesson сохраняет серию и показывает результат
func (h *Handlers) finishAddLesson(ctx context.Context, b *bot.Bot, chatID int64, in *service.LessonInput) {
	h.stateManager.ClearState(chatID)

	lessons, err := h.lessons.CreateLesson(ctx, *in)
	if err != nil {
		h.logger.Error("Failed to create lesson from dialog",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, ErrorMessage(err)+"\n\nZacznij od nowa: /addlesson")
		return
	}

	first := lessons[0]
	text := fmt.Sprintf("✅ Dodano %d %s\n\n%s", len(lessons), formatting.PluralizeLessons(len(lessons)), formatting.FormatLessonLine(first))
	if len(lessons) > 1 {
		last := lessons[len(lessons)-1]
		text += fmt.Sprintf("\n\nOstatni termin: %s", formatting.FormatDateWithWeekday(last.Day()))
	}

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📋 Szczegóły", CallbackData(CallbackLesson, first.ID)),
			keyboard.Button("📅 Plan dnia", CallbackData(CallbackDay, first.Day().String())),
		).
		Build()
	h.sendHTML(ctx, b, chatID, text, kb)
}
