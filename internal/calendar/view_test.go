package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

func d(y int, m time.Month, day int) model.Date {
	return model.Date{Year: y, Month: m, Day: day}
}

func TestWeekView(t *testing.T) {
	// 2024-01-21 воскресенье, при неделе с понедельника это конец недели 15-го
	days := calendar.DaysInView(calendar.ViewWeek, d(2024, 1, 21), time.Monday)
	require.Len(t, days, 7)
	require.Equal(t, d(2024, 1, 15), days[0])
	require.Equal(t, d(2024, 1, 21), days[6])

	days = calendar.DaysInView(calendar.ViewWeek, d(2024, 1, 21), time.Sunday)
	require.Equal(t, d(2024, 1, 21), days[0])
}

func TestMonthView(t *testing.T) {
	// март 2024 начинается в пятницу
	days := calendar.DaysInView(calendar.ViewMonth, d(2024, 3, 17), time.Monday)
	require.Len(t, days, 42)
	require.Equal(t, d(2024, 2, 26), days[0])
	require.Equal(t, d(2024, 4, 7), days[41])

	// апрель 2024 начинается в понедельник
	days = calendar.DaysInView(calendar.ViewMonth, d(2024, 4, 10), time.Monday)
	require.Equal(t, d(2024, 4, 1), days[0])
}

func TestDayView(t *testing.T) {
	require.Equal(t, []model.Date{d(2024, 1, 1)}, calendar.DaysInView(calendar.ViewDay, d(2024, 1, 1), time.Monday))
}

func TestNavigate(t *testing.T) {
	require.Equal(t, d(2023, 12, 31), calendar.Navigate(calendar.ViewDay, d(2024, 1, 1), -1))
	require.Equal(t, d(2024, 1, 8), calendar.Navigate(calendar.ViewWeek, d(2024, 1, 1), 1))
	require.Equal(t, d(2024, 2, 29), calendar.Navigate(calendar.ViewMonth, d(2024, 1, 31), 1))
	require.Equal(t, d(2023, 12, 31), calendar.Navigate(calendar.ViewMonth, d(2024, 1, 31), -1))
}

func TestParseView(t *testing.T) {
	v, err := calendar.ParseView("")
	require.NoError(t, err)
	require.Equal(t, calendar.ViewWeek, v)

	v, err = calendar.ParseView("month")
	require.NoError(t, err)
	require.Equal(t, calendar.ViewMonth, v)

	_, err = calendar.ParseView("year")
	require.Error(t, err)
}

func TestRangeLabel(t *testing.T) {
	require.Equal(t, "poniedziałek, 15 stycznia 2024", calendar.RangeLabel(calendar.ViewDay, d(2024, 1, 15), time.Monday))
	require.Equal(t, "15.01.2024 - 21.01.2024", calendar.RangeLabel(calendar.ViewWeek, d(2024, 1, 17), time.Monday))
	require.Equal(t, "luty 2024", calendar.RangeLabel(calendar.ViewMonth, d(2024, 2, 10), time.Monday))
}
