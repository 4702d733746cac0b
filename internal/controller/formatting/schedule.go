package formatting

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// StudentNamer переводит ID учеников в имена
type StudentNamer func(ids []string) []string

// FormatLessonLine одна строка расписания: "🕘 09:00-09:45 Lekcja indywidualna - Fortepian"
func FormatLessonLine(l model.Lesson) string {
	line := fmt.Sprintf("🕘 <b>%s</b> %s",
		FormatTimeRange(l.StartTime, l.EndTime()),
		html.EscapeString(l.Summary()))

	var details []string
	if l.Teacher != "" {
		details = append(details, html.EscapeString(l.Teacher))
	}
	if l.Type.Online() {
		details = append(details, "online")
	} else if l.Room != "" {
		details = append(details, html.EscapeString(l.Room))
	}
	if len(details) > 0 {
		line += "\n    " + strings.Join(details, " · ")
	}
	return line
}

// FormatLesson подробная карточка занятия
func FormatLesson(l model.Lesson, status model.PaymentStatus, names StudentNamer) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🎵 <b>%s</b>\n\n", html.EscapeString(l.Summary())))
	sb.WriteString(fmt.Sprintf("📋 %s\n", l.Type.Label()))
	sb.WriteString(fmt.Sprintf("📅 %s\n", FormatDateWithWeekday(l.Day())))
	sb.WriteString(fmt.Sprintf("🕘 %s (%s)\n", FormatTimeRange(l.StartTime, l.EndTime()), FormatDuration(l.Duration)))

	if l.Instrument != "" {
		sb.WriteString(fmt.Sprintf("🎹 %s\n", html.EscapeString(l.Instrument)))
	}
	if l.Teacher != "" {
		sb.WriteString(fmt.Sprintf("👤 %s\n", html.EscapeString(l.Teacher)))
	}
	switch {
	case l.Type.Online():
		sb.WriteString("💻 Online\n")
	case l.Room != "":
		sb.WriteString(fmt.Sprintf("🚪 %s\n", html.EscapeString(l.Room)))
	}

	if l.Price > 0 {
		sb.WriteString(fmt.Sprintf("💰 %s\n", FormatLessonPrice(l.PriceType, l.Price)))
	}

	sb.WriteString(fmt.Sprintf("👥 %d %s (miejsc: %d)\n", len(l.Students), PluralizeStudents(len(l.Students)), l.MaxParticipants))
	if len(l.Students) > 0 {
		for i, name := range names(l.Students) {
			mark := "▫️"
			if l.StudentPayments[l.Students[i]] {
				mark = "✅"
			}
			sb.WriteString(fmt.Sprintf("   %s %s\n", mark, html.EscapeString(name)))
		}
	}
	sb.WriteString(FormatPaymentStatus(status) + "\n")

	if l.Description != "" {
		sb.WriteString("\n<i>" + html.EscapeString(l.Description) + "</i>\n")
	}

	return sb.String()
}

// FormatDaySchedule расписание на день для сообщения
func FormatDaySchedule(day model.Date, lessons []model.Lesson, filters model.FilterSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📅 <b>%s</b>\n", FormatDateWithWeekday(day)))
	if filters.HasActive() {
		sb.WriteString(fmt.Sprintf("🔎 Aktywne filtry: %d\n", filters.Count()))
	}
	sb.WriteString("\n")

	if len(lessons) == 0 {
		sb.WriteString("Brak zajęć w tym dniu.")
		return sb.String()
	}

	for _, l := range lessons {
		sb.WriteString(FormatLessonLine(l))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nRazem: %d %s", len(lessons), PluralizeLessons(len(lessons))))
	return sb.String()
}

// FormatWeek краткий обзор недели: день и число занятий
func FormatWeek(title string, days []model.Date, byDay map[model.Date][]model.Lesson) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🗓 <b>%s</b>\n\n", html.EscapeString(title)))

	total := 0
	for _, d := range days {
		lessons := byDay[d]
		total += len(lessons)
		sb.WriteString(fmt.Sprintf("<b>%s</b>", FormatDateWithWeekday(d)))
		if len(lessons) == 0 {
			sb.WriteString(" - wolne\n")
			continue
		}
		sb.WriteString("\n")
		for _, l := range lessons {
			sb.WriteString(fmt.Sprintf("  %s %s\n", l.StartTime, html.EscapeString(l.Summary())))
		}
	}
	sb.WriteString(fmt.Sprintf("\nRazem: %d %s", total, PluralizeLessons(total)))
	return sb.String()
}

var filterCategoryLabels = []struct {
	category model.FilterCategory
	label    string
}{
	{model.FilterTeacher, "Nauczyciele"},
	{model.FilterRoom, "Sale"},
	{model.FilterInstrument, "Instrumenty"},
	{model.FilterLessonType, "Typy zajęć"},
}

// FormatFilters список активных фильтров
func FormatFilters(f model.FilterSet) string {
	if !f.HasActive() {
		return "🔎 Brak aktywnych filtrów."
	}

	values := map[model.FilterCategory][]string{
		model.FilterTeacher:    f.Teachers,
		model.FilterRoom:       f.Rooms,
		model.FilterInstrument: f.Instruments,
		model.FilterLessonType: lessonTypeLabels(f.LessonTypes),
	}

	var sb strings.Builder
	sb.WriteString("🔎 <b>Aktywne filtry</b>\n")
	for _, c := range filterCategoryLabels {
		if len(values[c.category]) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s: %s", c.label, html.EscapeString(strings.Join(values[c.category], ", "))))
	}
	return sb.String()
}

func lessonTypeLabels(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, model.LessonType(t).Label())
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
