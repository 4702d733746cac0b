package formatting

import (
	"fmt"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// FormatDate форматирует дату как 15.01.2024
func FormatDate(d model.Date) string {
	return calendar.ShortDate(d)
}

// FormatDateWithWeekday форматирует дату с днём недели: "Pn 15.01.2024"
func FormatDateWithWeekday(d model.Date) string {
	return calendar.WeekdayShort(d.Weekday()) + " " + FormatDate(d)
}

// FormatTimeRange форматирует диапазон времени занятия
func FormatTimeRange(start, end model.ClockTime) string {
	return fmt.Sprintf("%s-%s", start, end)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}
