// Package export выгрузка занятий для внешних календарей.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

const productID = "-//Szkola Muzyczna//Terminarz//PL"

// ICSOptions настройки выгрузки
type ICSOptions struct {
	Name string
	// UIDDomain добавляется к ID занятия, чтобы UID был глобально уникальным
	UIDDomain string
	Now       time.Time
}

// WriteICS пишет по одному VEVENT на занятие
func WriteICS(w io.Writer, lessons []model.Lesson, opts ICSOptions) error {
	cal := BuildCalendar(lessons, opts)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("write ics: %w", err)
	}
	return nil
}

func BuildCalendar(lessons []model.Lesson, opts ICSOptions) *ical.Calendar {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.UIDDomain == "" {
		opts.UIDDomain = "music-school.local"
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	if opts.Name != "" {
		cal.SetName(opts.Name)
	}

	for _, l := range lessons {
		start := l.StartsAt()
		end := start.Add(time.Duration(l.Duration) * time.Minute)

		ev := cal.AddEvent(l.ID + "@" + opts.UIDDomain)
		ev.SetDtStampTime(opts.Now)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(l.Summary())
		ev.SetLocation(location(l))
		ev.SetDescription(description(l))
		ev.AddProperty(ical.ComponentPropertyCategories, string(l.Type))
	}
	return cal
}

func location(l model.Lesson) string {
	if l.Type.Online() {
		return "Online"
	}
	return l.Room
}

func description(l model.Lesson) string {
	lines := []string{
		"Nauczyciel: " + l.Teacher,
		"Instrument: " + l.Instrument,
	}
	if len(l.Students) > 0 {
		status := schedule.PaymentStatusOf(l)
		lines = append(lines, fmt.Sprintf("Uczniowie: %d/%d, opłacone: %d", len(l.Students), l.MaxParticipants, status.Paid))
	}
	if l.Description != "" {
		lines = append(lines, l.Description)
	}
	return strings.Join(lines, "\n")
}
