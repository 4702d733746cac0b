package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

func at(id, start string) model.Lesson {
	return model.Lesson{ID: id, LessonTemplate: model.LessonTemplate{StartTime: model.MustParseClock(start), Duration: 30}}
}

func TestSlots(t *testing.T) {
	hours := calendar.HourSlots()
	require.Len(t, hours, 15)
	require.Equal(t, "08:00", hours[0].String())
	require.Equal(t, "22:00", hours[14].String())
}

func TestDayGrid(t *testing.T) {
	slots, outside := calendar.DayGrid([]model.Lesson{at("a", "08:00"), at("b", "08:45"), at("c", "13:30"), at("d", "07:00"), at("e", "22:30")})

	require.Len(t, slots, 15)
	require.Len(t, slots[0].Lessons, 2)
	require.Equal(t, "c", slots[5].Lessons[0].ID)
	require.Equal(t, "e", slots[14].Lessons[0].ID)
	require.Len(t, outside, 1)
	require.Equal(t, "d", outside[0].ID)
}

func TestMonthCells(t *testing.T) {
	current := d(2024, 3, 1)
	days := calendar.DaysInView(calendar.ViewMonth, current, time.Monday)
	byDay := map[model.Date][]model.Lesson{
		d(2024, 3, 5): {at("1", "08:00"), at("2", "09:00"), at("3", "10:00"), at("4", "11:00"), at("5", "12:00")},
	}

	cells := calendar.MonthCells(current, days, byDay)
	require.Len(t, cells, 42)
	require.False(t, cells[0].InMonth)
	require.Empty(t, cells[0].Lessons)

	var march5 calendar.MonthCell
	for _, c := range cells {
		if c.Date == d(2024, 3, 5) {
			march5 = c
		}
	}
	require.True(t, march5.InMonth)
	require.Len(t, march5.Lessons, calendar.MonthCellLimit)
	require.Equal(t, 2, march5.Hidden)
}
