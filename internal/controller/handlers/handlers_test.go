package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/state"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

var testToday = model.Date{Year: 2024, Month: time.January, Day: 15}

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	logger := zaptest.NewLogger(t)

	catalog := repository.NewCatalogRepository()
	catalog.Replace(
		[]model.Room{{ID: "r1", Name: "Sala 1", Capacity: 4, Instruments: []string{"Fortepian"}, Available: true}},
		[]model.Teacher{{ID: "t1", Name: "Anna Kowalska", Instruments: []string{"Fortepian"}, Available: true}},
		[]model.Student{{ID: "s1", FirstName: "Kasia", LastName: "Nowicka"}},
		nil,
	)

	n := 0
	lessons := service.NewLessonService(repository.NewLessonRepository(logger), catalog, time.UTC, logger).
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}).
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) })

	return NewHandlers(lessons, service.NewCatalogService(catalog), state.NewManager(), time.Monday, logger)
}

func TestParseCallback(t *testing.T) {
	prefix, args, err := ParseCallback("pay:id-1:s1", 2)
	require.NoError(t, err)
	require.Equal(t, CallbackPayment, prefix)
	require.Equal(t, []string{"id-1", "s1"}, args)

	_, _, err = ParseCallback("pay:id-1", 2)
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseCallback("lesson:", 1)
	require.ErrorIs(t, err, ErrInvalidFormat)

	require.Equal(t, "day:2024-01-15", CallbackData(CallbackDay, testToday.String()))
	require.Equal(t, CallbackClearFilters, CallbackData(CallbackClearFilters))
	require.Equal(t, "delok", callbackPrefix("delok:abc"))
}

func TestParseFilterArgs(t *testing.T) {
	c, v, err := ParseFilterArgs("sala  Sala 1")
	require.NoError(t, err)
	require.Equal(t, model.FilterRoom, c)
	require.Equal(t, "Sala 1", v)

	c, v, err = ParseFilterArgs("Teacher Anna Kowalska")
	require.NoError(t, err)
	require.Equal(t, model.FilterTeacher, c)
	require.Equal(t, "Anna Kowalska", v)

	_, _, err = ParseFilterArgs("teacher")
	require.ErrorIs(t, err, ErrInvalidFormat)

	_, _, err = ParseFilterArgs("color red")
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestResolveFilterValue(t *testing.T) {
	h := newTestHandlers(t)

	v, ok := h.resolveFilterValue(model.FilterTeacher, "anna kowalska")
	require.True(t, ok)
	require.Equal(t, "Anna Kowalska", v)

	v, ok = h.resolveFilterValue(model.FilterLessonType, "Zajęcia grupowe")
	require.True(t, ok)
	require.Equal(t, string(model.LessonTypeGroup), v)

	_, ok = h.resolveFilterValue(model.FilterRoom, "Aula")
	require.False(t, ok)
}

func TestUpcomingLessons(t *testing.T) {
	at := func(day int, start string) model.Lesson {
		return model.Lesson{ID: fmt.Sprintf("%d-%s", day, start), LessonTemplate: model.LessonTemplate{
			Date:      time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
			StartTime: model.MustParseClock(start),
		}}
	}
	lessons := []model.Lesson{at(16, "10:00"), at(14, "9:00"), at(15, "12:00"), at(15, "8:00"), at(20, "8:00")}

	got := UpcomingLessons(lessons, testToday, 3)
	require.Len(t, got, 3)
	require.Equal(t, "15-8:00", got[0].ID)
	require.Equal(t, "15-12:00", got[1].ID)
	require.Equal(t, "16-10:00", got[2].ID)
}

func TestDayScreen(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	_, err := h.lessons.CreateLesson(ctx, service.LessonInput{
		Type:       model.LessonTypeIndividualStationary,
		Date:       testToday,
		StartTime:  "9:00",
		Duration:   45,
		Teacher:    "Anna Kowalska",
		Room:       "Sala 1",
		Instrument: "Fortepian",
		Students:   []string{"s1"},
	})
	require.NoError(t, err)

	text, kb, err := h.dayScreen(ctx, 42, testToday)
	require.NoError(t, err)
	require.Contains(t, text, "09:00-09:45")
	require.Equal(t, "lesson:id-1", kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "day:2024-01-14", kb.InlineKeyboard[1][0].CallbackData)
	require.Equal(t, "day:2024-01-16", kb.InlineKeyboard[1][2].CallbackData)

	// фильтр другого чата не влияет
	_, err = h.stateManager.UpdateFilters(7, func(f *model.FilterSet) error {
		return f.Add(model.FilterRoom, "Aula")
	})
	require.NoError(t, err)

	text, kb, err = h.dayScreen(ctx, 7, testToday)
	require.NoError(t, err)
	require.Contains(t, text, "Brak zajęć")
	require.Equal(t, "fclear", kb.InlineKeyboard[len(kb.InlineKeyboard)-1][0].CallbackData)
}

func TestLessonScreen(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	created, err := h.lessons.CreateLesson(ctx, service.LessonInput{
		Type:       model.LessonTypeGroup,
		Date:       testToday,
		StartTime:  "17:00",
		Duration:   60,
		Teacher:    "Anna Kowalska",
		Instrument: "Fortepian",
		Students:   []string{"s1"},
	})
	require.NoError(t, err)

	text, kb, err := h.lessonScreen(ctx, created[0].ID)
	require.NoError(t, err)
	require.Contains(t, text, "Kasia Nowicka")
	require.Equal(t, "pay:id-1:s1", kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "del:id-1", kb.InlineKeyboard[1][1].CallbackData)

	_, _, err = h.lessonScreen(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrLessonNotFound)
}

func TestParseDay(t *testing.T) {
	h := newTestHandlers(t)

	d, err := h.parseDay("")
	require.NoError(t, err)
	require.Equal(t, testToday, d)

	d, err = h.parseDay("jutro")
	require.NoError(t, err)
	require.Equal(t, testToday.AddDays(1), d)

	d, err = h.parseDay("3.02.2024")
	require.NoError(t, err)
	require.Equal(t, model.Date{Year: 2024, Month: time.February, Day: 3}, d)

	_, err = h.parseDay("wczoraj")
	require.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestDraft(t *testing.T) {
	h := newTestHandlers(t)

	_, err := h.draft(1)
	require.ErrorIs(t, err, ErrNoDraft)

	h.stateManager.SetData(1, state.KeyLessonInput, &service.LessonInput{Duration: 45})
	in, err := h.draft(1)
	require.NoError(t, err)
	require.Equal(t, 45, in.Duration)
}

func TestErrorMessage(t *testing.T) {
	require.Contains(t, ErrorMessage(fmt.Errorf("get: %w", repository.ErrLessonNotFound)), "Nie znaleziono")
	require.Contains(t, ErrorMessage(ErrNoDraft), "/addlesson")
	require.Contains(t, ErrorMessage(errors.New("boom")), "Wystąpił błąd")
}

func TestLessonTypeKeyboard(t *testing.T) {
	kb := lessonTypeKeyboard()
	// 8 типов по два в ряд и кнопка отмены
	require.Len(t, kb.InlineKeyboard, 5)
	require.Equal(t, "addtype:individual-stationary", kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, CallbackAddCancel, kb.InlineKeyboard[4][0].CallbackData)
}
