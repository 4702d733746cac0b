package schedule_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

func sequentialIDs() schedule.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("lesson-%d", n)
	}
}

func template(date time.Time) model.LessonTemplate {
	return model.LessonTemplate{
		Type:            model.LessonTypeGroup,
		Date:            date,
		StartTime:       model.MustParseClock("17:00"),
		Duration:        60,
		Teacher:         "Anna Kowalska",
		Room:            "Sala 1",
		Instrument:      "Fortepian",
		Students:        []string{"s1", "s2"},
		MaxParticipants: 6,
		PriceType:       model.PriceTypePerPerson,
		Price:           8000,
		StudentPayments: map[string]bool{"s1": true},
	}
}

func days(lessons []model.Lesson) []string {
	out := make([]string, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, l.Day().String())
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandWeekly(t *testing.T) {
	lessons, err := schedule.Expand(template(date(2024, 1, 1)),
		model.RecurrencePolicy{Frequency: model.FrequencyWeekly, Count: 4}, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}, days(lessons))
}

func TestExpandDaily(t *testing.T) {
	lessons, err := schedule.Expand(template(date(2024, 2, 27)),
		model.RecurrencePolicy{Frequency: model.FrequencyDaily, Count: 4}, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, days(lessons))
}

func TestExpandBiweeklyAcrossYearBoundary(t *testing.T) {
	lessons, err := schedule.Expand(template(date(2024, 12, 25)),
		model.RecurrencePolicy{Frequency: model.FrequencyBiweekly, Count: 3}, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []string{"2024-12-25", "2025-01-08", "2025-01-22"}, days(lessons))
}

func TestExpandMonthlyClampsToLastDay(t *testing.T) {
	lessons, err := schedule.Expand(template(date(2024, 1, 31)),
		model.RecurrencePolicy{Frequency: model.FrequencyMonthly, Count: 4}, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}, days(lessons))
}

func TestExpandMonthlyAgreesWithAddMonthsClamped(t *testing.T) {
	for day := 1; day <= 31; day++ {
		start := date(2023, 1, day)
		lessons, err := schedule.Expand(template(start),
			model.RecurrencePolicy{Frequency: model.FrequencyMonthly, Count: 14}, sequentialIDs())
		require.NoError(t, err, "day %d", day)
		require.Len(t, lessons, 14)

		for i, l := range lessons {
			want := schedule.AddMonthsClamped(model.DateOf(start), i)
			require.Equal(t, want, l.Day(), "day %d occurrence %d", day, i)
		}
	}
}

func TestExpandCopiesTemplate(t *testing.T) {
	tmpl := template(date(2024, 3, 4))
	lessons, err := schedule.Expand(tmpl,
		model.RecurrencePolicy{Frequency: model.FrequencyWeekly, Count: 3}, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, lessons, 3)

	seen := map[string]bool{}
	for _, l := range lessons {
		require.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true

		require.Equal(t, tmpl.Teacher, l.Teacher)
		require.Equal(t, tmpl.Room, l.Room)
		require.Equal(t, tmpl.StartTime, l.StartTime)
		require.Equal(t, tmpl.Duration, l.Duration)
		require.Equal(t, tmpl.Students, l.Students)
		require.Equal(t, tmpl.StudentPayments, l.StudentPayments)
		require.Equal(t, model.MustParseClock("18:00"), l.EndTime())
	}

	lessons[0].Students[0] = "changed"
	lessons[0].StudentPayments["s2"] = true
	require.Equal(t, "s1", lessons[1].Students[0])
	require.False(t, lessons[1].StudentPayments["s2"])
	require.Equal(t, "s1", tmpl.Students[0])
}

func TestExpandSingleOccurrence(t *testing.T) {
	tmpl := template(date(2024, 5, 10))
	lessons, err := schedule.Expand(tmpl,
		model.RecurrencePolicy{Frequency: model.FrequencyMonthly, Count: 1}, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	require.Equal(t, "lesson-1", lessons[0].ID)
	require.Equal(t, tmpl.Date, lessons[0].Date)
}

func TestExpandInvalidPolicy(t *testing.T) {
	cases := []model.RecurrencePolicy{
		{Frequency: model.FrequencyWeekly, Count: 0},
		{Frequency: model.FrequencyWeekly, Count: -3},
		{Frequency: model.FrequencyDaily, Count: schedule.MaxOccurrences + 1},
		{Frequency: "yearly", Count: 2},
		{Frequency: "yearly", Count: 1},
		{Frequency: "", Count: 2},
	}
	for _, policy := range cases {
		_, err := schedule.Expand(template(date(2024, 1, 1)), policy, sequentialIDs())
		require.ErrorIs(t, err, schedule.ErrInvalidPolicy, "%+v", policy)
	}
}

func TestExpandSingleWithoutFrequency(t *testing.T) {
	lessons, err := schedule.Expand(template(date(2024, 1, 1)), model.RecurrencePolicy{Count: 1}, sequentialIDs())
	require.NoError(t, err)
	require.Len(t, lessons, 1)
}

func TestExpandKeepsLocation(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	start := time.Date(2024, 3, 25, 0, 0, 0, 0, warsaw)
	lessons, err := schedule.Expand(template(start),
		model.RecurrencePolicy{Frequency: model.FrequencyDaily, Count: 2}, sequentialIDs())
	require.NoError(t, err)
	require.Equal(t, "Europe/Warsaw", lessons[1].Date.Location().String())
	require.Equal(t, "2024-03-26", lessons[1].Day().String())
}

func TestAddMonthsClamped(t *testing.T) {
	d := model.Date{Year: 2024, Month: time.January, Day: 31}
	require.Equal(t, model.Date{Year: 2024, Month: time.February, Day: 29}, schedule.AddMonthsClamped(d, 1))
	require.Equal(t, model.Date{Year: 2023, Month: time.February, Day: 28}, schedule.AddMonthsClamped(model.Date{Year: 2023, Month: time.January, Day: 30}, 1))
	require.Equal(t, model.Date{Year: 2023, Month: time.December, Day: 31}, schedule.AddMonthsClamped(d, -1))
	require.Equal(t, model.Date{Year: 2025, Month: time.January, Day: 31}, schedule.AddMonthsClamped(d, 12))
}
