package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

func newCatalog() *repository.CatalogRepository {
	catalog := repository.NewCatalogRepository()
	catalog.Replace(
		[]model.Room{
			{ID: "r1", Name: "Sala 1", Capacity: 2, Instruments: []string{"Fortepian"}, Available: true},
			{ID: "r2", Name: "Sala kameralna", Capacity: 12, Instruments: []string{"Fortepian", "Skrzypce"}, Available: true},
		},
		[]model.Teacher{
			{ID: "t1", Name: "Anna Kowalska", Instruments: []string{"Fortepian"}, Available: true},
			{ID: "t2", Name: "Magdalena Wiśniewska", Instruments: []string{"Skrzypce"}, Available: true},
		},
		[]model.Student{
			{ID: "s1", FirstName: "Kasia", LastName: "Nowicka"},
			{ID: "s2", FirstName: "Jan", LastName: "Wójcik"},
		},
		nil,
	)
	return catalog
}

func newService(t *testing.T) (*service.LessonService, *repository.LessonRepository) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	store := repository.NewLessonRepository(logger)

	n := 0
	svc := service.NewLessonService(store, newCatalog(), time.UTC, logger).
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}).
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) })
	return svc, store
}

func validInput() service.LessonInput {
	return service.LessonInput{
		Type:       model.LessonTypeGroup,
		Date:       model.Date{Year: 2024, Month: time.January, Day: 15},
		StartTime:  "17:00",
		Duration:   60,
		Teacher:    "Anna Kowalska",
		Room:       "Sala kameralna",
		Instrument: "Fortepian",
		Students:   []string{"s1", "s2"},
		PriceType:  model.PriceTypePerPerson,
		Price:      6000,
	}
}

func TestCreateLessonSingle(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	lessons, err := svc.CreateLesson(ctx, validInput())
	require.NoError(t, err)
	require.Len(t, lessons, 1)

	l := lessons[0]
	require.Equal(t, "id-1", l.ID)
	require.Equal(t, 12, l.MaxParticipants, "capacity comes from the room")
	require.Equal(t, "18:00", l.EndTime().String())
	require.NotNil(t, l.StudentPayments)
	require.Equal(t, 1, store.Count())
}

func TestCreateLessonRecurring(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	in := validInput()
	in.Date = model.Date{Year: 2024, Month: time.January, Day: 31}
	in.Recurrence = &model.RecurrencePolicy{Frequency: model.FrequencyMonthly, Count: 3}

	lessons, err := svc.CreateLesson(ctx, in)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	require.Equal(t, "2024-02-29", lessons[1].Day().String())
	require.Equal(t, "2024-03-31", lessons[2].Day().String())
	require.Equal(t, 3, store.Count())
}

func TestCreateLessonInvalidPolicyStoresNothing(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	in := validInput()
	in.Recurrence = &model.RecurrencePolicy{Frequency: model.FrequencyWeekly, Count: 0}

	_, err := svc.CreateLesson(ctx, in)
	require.ErrorIs(t, err, schedule.ErrInvalidPolicy)
	require.Equal(t, 0, store.Count())
}

func TestCreateLessonValidation(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(in *service.LessonInput){
		"unknown type":          func(in *service.LessonInput) { in.Type = "jam" },
		"missing date":          func(in *service.LessonInput) { in.Date = model.Date{} },
		"bad start":             func(in *service.LessonInput) { in.StartTime = "25:00" },
		"short duration":        func(in *service.LessonInput) { in.Duration = 5 },
		"missing teacher":       func(in *service.LessonInput) { in.Teacher = "" },
		"missing instrument":    func(in *service.LessonInput) { in.Instrument = "" },
		"negative price":        func(in *service.LessonInput) { in.Price = -1 },
		"bad price type":        func(in *service.LessonInput) { in.PriceType = "hourly" },
		"unknown student":       func(in *service.LessonInput) { in.Students = []string{"ghost"} },
		"practice without room": func(in *service.LessonInput) { in.Type = model.LessonTypePracticeRoom; in.Room = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, store := newService(t)
			in := validInput()
			mutate(&in)

			_, err := svc.CreateLesson(ctx, in)
			require.ErrorIs(t, err, service.ErrValidation)
			require.Equal(t, 0, store.Count())
		})
	}
}

func TestCreateLessonDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	in := validInput()
	in.Type = model.LessonTypeIndividualOnline
	in.Students = []string{"s1"}
	in.PriceType = ""
	lessons, err := svc.CreateLesson(ctx, in)
	require.NoError(t, err)
	require.Empty(t, lessons[0].Room, "online lessons have no room")
	require.Equal(t, 1, lessons[0].MaxParticipants)
	require.Equal(t, model.PriceTypeTotal, lessons[0].PriceType)

	in = validInput()
	in.MaxParticipants = 5
	lessons, err = svc.CreateLesson(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 5, lessons[0].MaxParticipants, "explicit capacity wins")

	in = validInput()
	in.Type = model.LessonTypePracticeRoom
	in.Teacher = ""
	in.Room = "Sala 1"
	lessons, err = svc.CreateLesson(ctx, in)
	require.NoError(t, err)
	require.Equal(t, 2, lessons[0].MaxParticipants)
}

func TestUpdateLessonReplacesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	in := validInput()
	in.Recurrence = &model.RecurrencePolicy{Frequency: model.FrequencyWeekly, Count: 3}
	created, err := svc.CreateLesson(ctx, in)
	require.NoError(t, err)

	edit := validInput()
	edit.Teacher = "Magdalena Wiśniewska"
	edit.Instrument = "Skrzypce"
	edit.StartTime = "18:15"
	edit.Recurrence = &model.RecurrencePolicy{Frequency: model.FrequencyDaily, Count: 10}

	updated, err := svc.UpdateLesson(ctx, created[1].ID, edit)
	require.NoError(t, err)
	require.Equal(t, created[1].ID, updated.ID)
	require.Equal(t, 3, store.Count(), "recurrence is ignored on edit")

	all, err := svc.ListLessons(ctx, model.FilterSet{}, "")
	require.NoError(t, err)
	require.Equal(t, "Anna Kowalska", all[0].Teacher)
	require.Equal(t, "Magdalena Wiśniewska", all[1].Teacher)
	require.Equal(t, "Anna Kowalska", all[2].Teacher)

	_, err = svc.UpdateLesson(ctx, "missing", edit)
	require.ErrorIs(t, err, repository.ErrLessonNotFound)
}

func TestDeleteLesson(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	created, err := svc.CreateLesson(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(ctx, created[0].ID))
	require.Equal(t, 0, store.Count())
	require.ErrorIs(t, svc.DeleteLesson(ctx, created[0].ID), repository.ErrLessonNotFound)
}

func TestDayScheduleWithFiltersAndSearch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	late := validInput()
	late.StartTime = "19:00"
	late.Title = "Chór"
	_, err := svc.CreateLesson(ctx, late)
	require.NoError(t, err)

	early := validInput()
	early.StartTime = "08:30"
	early.Teacher = "Magdalena Wiśniewska"
	early.Instrument = "Skrzypce"
	_, err = svc.CreateLesson(ctx, early)
	require.NoError(t, err)

	day := model.Date{Year: 2024, Month: time.January, Day: 15}
	got, err := svc.DaySchedule(ctx, day, model.FilterSet{}, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "08:30", got[0].StartTime.String())

	got, err = svc.DaySchedule(ctx, day, model.FilterSet{Instruments: []string{"Fortepian"}}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Chór", got[0].Title)

	got, err = svc.DaySchedule(ctx, day, model.FilterSet{}, "chór")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.DaySchedule(ctx, day.AddDays(1), model.FilterSet{}, "")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTogglePayment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.CreateLesson(ctx, validInput())
	require.NoError(t, err)
	id := created[0].ID

	lesson, err := svc.TogglePayment(ctx, id, "s1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatus{Paid: 1, Total: 2}, svc.PaymentSummary(lesson))

	lesson, err = svc.TogglePayment(ctx, id, "s2")
	require.NoError(t, err)
	require.Equal(t, model.PaymentFullyPaid, svc.PaymentSummary(lesson).State())

	lesson, err = svc.TogglePayment(ctx, id, "s1")
	require.NoError(t, err)
	require.Equal(t, model.PaymentPartial, svc.PaymentSummary(lesson).State())

	_, err = svc.TogglePayment(ctx, id, "s9")
	require.ErrorIs(t, err, service.ErrStudentNotEnrolled)
}

func TestTogglePaymentConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	lesson := model.Lesson{
		ID: "ensemble",
		LessonTemplate: model.LessonTemplate{
			Type:      model.LessonTypeGroup,
			Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			StartTime: model.MustParseClock("17:00"),
			Duration:  60,
			Teacher:   "Anna Kowalska",
		},
	}
	for i := 1; i <= 8; i++ {
		lesson.Students = append(lesson.Students, fmt.Sprintf("s%d", i))
	}
	require.NoError(t, store.CreateBatch(ctx, []model.Lesson{lesson}))

	// нечётное число раундов: каждый ученик в итоге отмечен как оплативший
	for round := 0; round < 5; round++ {
		var wg sync.WaitGroup
		for _, studentID := range lesson.Students {
			wg.Add(1)
			go func(studentID string) {
				defer wg.Done()
				_, err := svc.TogglePayment(ctx, lesson.ID, studentID)
				require.NoError(t, err)
			}(studentID)
		}
		wg.Wait()
	}

	got, err := store.GetByID(ctx, lesson.ID)
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatus{Paid: 8, Total: 8}, svc.PaymentSummary(got))
}

func TestToday(t *testing.T) {
	svc, _ := newService(t)
	require.Equal(t, model.Date{Year: 2024, Month: time.January, Day: 15}, svc.Today())
}

type recordingNotifier struct {
	events []string
}

func (r *recordingNotifier) LessonsCreated(lessons []model.Lesson) {
	r.events = append(r.events, fmt.Sprintf("created:%d", len(lessons)))
}

func (r *recordingNotifier) LessonUpdated(before, after model.Lesson) {
	r.events = append(r.events, "updated:"+before.Day().String()+">"+after.Day().String())
}

func (r *recordingNotifier) LessonDeleted(lesson model.Lesson) {
	r.events = append(r.events, "deleted:"+lesson.ID)
}

func (r *recordingNotifier) PaymentChanged(lesson model.Lesson, studentID string) {
	r.events = append(r.events, fmt.Sprintf("payment:%s:%s:%t", lesson.ID, studentID, lesson.StudentPayments[studentID]))
}

func TestNotifierReceivesChanges(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	rec := &recordingNotifier{}
	svc.WithNotifier(rec)

	in := validInput()
	in.Recurrence = &model.RecurrencePolicy{Frequency: model.FrequencyWeekly, Count: 3}
	created, err := svc.CreateLesson(ctx, in)
	require.NoError(t, err)

	edit := validInput()
	edit.Date = model.Date{Year: 2024, Month: time.January, Day: 16}
	_, err = svc.UpdateLesson(ctx, created[0].ID, edit)
	require.NoError(t, err)

	_, err = svc.TogglePayment(ctx, created[1].ID, "s1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLesson(ctx, created[2].ID))

	// неудачные операции уведомлений не шлют
	_, err = svc.CreateLesson(ctx, service.LessonInput{})
	require.Error(t, err)
	require.Error(t, svc.DeleteLesson(ctx, "missing"))

	require.Equal(t, []string{
		"created:3",
		"updated:2024-01-15>2024-01-16",
		"payment:id-2:s1:true",
		"deleted:id-3",
	}, rec.events)
}
