// Package calendar раскладывает занятия по видам дня, недели и месяца.
package calendar

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// monthGridDays шесть полных недель, хватает на любой месяц
const monthGridDays = 42

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDay, ViewWeek, ViewMonth:
		return View(s), nil
	case "":
		return ViewWeek, nil
	}
	return "", fmt.Errorf("unknown calendar view %q", s)
}

// WeekStart первый день недели, в которую входит d
func WeekStart(d model.Date, first time.Weekday) model.Date {
	offset := (int(d.Weekday()) - int(first) + 7) % 7
	return d.AddDays(-offset)
}

// DaysInView дни, которые показывает вид вокруг current.
// Месяц начинается с начала недели, содержащей 1-е число, и всегда занимает 42 дня.
func DaysInView(v View, current model.Date, first time.Weekday) []model.Date {
	switch v {
	case ViewDay:
		return []model.Date{current}
	case ViewWeek:
		return consecutive(WeekStart(current, first), 7)
	default:
		monthStart := model.Date{Year: current.Year, Month: current.Month, Day: 1}
		return consecutive(WeekStart(monthStart, first), monthGridDays)
	}
}

// Navigate шаг назад (step < 0) или вперёд на день, неделю или месяц
func Navigate(v View, current model.Date, step int) model.Date {
	switch v {
	case ViewDay:
		return current.AddDays(step)
	case ViewWeek:
		return current.AddDays(7 * step)
	default:
		return schedule.AddMonthsClamped(current, step)
	}
}

func consecutive(from model.Date, n int) []model.Date {
	out := make([]model.Date, n)
	for i := range out {
		out[i] = from.AddDays(i)
	}
	return out
}

// RangeLabel заголовок над видом
func RangeLabel(v View, current model.Date, first time.Weekday) string {
	switch v {
	case ViewDay:
		return fmt.Sprintf("%s, %d %s %d", WeekdayName(current.Weekday()), current.Day, MonthNameGenitive(current.Month), current.Year)
	case ViewWeek:
		start := WeekStart(current, first)
		end := start.AddDays(6)
		return fmt.Sprintf("%s - %s", ShortDate(start), ShortDate(end))
	default:
		return fmt.Sprintf("%s %d", MonthName(current.Month), current.Year)
	}
}

func ShortDate(d model.Date) string {
	return fmt.Sprintf("%02d.%02d.%d", d.Day, int(d.Month), d.Year)
}
