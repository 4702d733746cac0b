package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/calendar"
	"github.com/Freeeeeet/music_school_scheduler/internal/export"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/render"
)

type DayResponse struct {
	Date    model.Date       `json:"date"`
	Lessons []LessonResponse `json:"lessons"`
}

type CalendarResponse struct {
	View  calendar.View        `json:"view"`
	Date  model.Date           `json:"date"`
	Label string               `json:"label"`
	Prev  model.Date           `json:"prev"`
	Next  model.Date           `json:"next"`
	Days  []DayResponse        `json:"days"`
	Slots []calendar.Slot      `json:"slots,omitempty"`
	Cells []calendar.MonthCell `json:"cells,omitempty"`
}

// Calendar занятия для вида дня, недели или месяца
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view, err := calendar.ParseView(q.Get("view"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, err.Error())
		return
	}

	current, err := h.dateParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, err.Error())
		return
	}

	days := calendar.DaysInView(view, current, h.weekStart)
	byDay, err := h.lessons.LessonsForDays(r.Context(), days, filtersFromQuery(q))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp := CalendarResponse{
		View:  view,
		Date:  current,
		Label: calendar.RangeLabel(view, current, h.weekStart),
		Prev:  calendar.Navigate(view, current, -1),
		Next:  calendar.Navigate(view, current, 1),
		Days:  make([]DayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, DayResponse{Date: d, Lessons: toResponses(byDay[d])})
	}

	switch view {
	case calendar.ViewDay:
		resp.Slots, _ = calendar.DayGrid(byDay[current])
	case calendar.ViewMonth:
		resp.Cells = calendar.MonthCells(current, days, byDay)
	}

	WriteJSON(w, http.StatusOK, resp)
}

// CalendarICS выгружает отфильтрованные занятия в формате iCalendar
func (h *Handler) CalendarICS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lessons, err := h.lessons.ListLessons(r.Context(), filtersFromQuery(q), q.Get("q"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="terminarz.ics"`)
	if err := export.WriteICS(w, lessons, export.ICSOptions{Name: "Terminarz szkoły muzycznej", UIDDomain: r.Host}); err != nil {
		h.logger.Warn("ICS export interrupted", zap.Error(err))
	}
}

// CalendarWeekPNG рисует PNG-сетку недели, в которую входит ?date=
func (h *Handler) CalendarWeekPNG(w http.ResponseWriter, r *http.Request) {
	current, err := h.dateParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, err.Error())
		return
	}

	days := calendar.DaysInView(calendar.ViewWeek, current, h.weekStart)
	byDay, err := h.lessons.LessonsForDays(r.Context(), days, filtersFromQuery(r.URL.Query()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	image, err := render.WeekImage(current, byDay, render.WeekOptions{
		FirstWeekday: h.weekStart,
		Today:        h.lessons.Today(),
	})
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, ErrInternalError, "failed to render week")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}

// dateParam читает ?date=, по умолчанию сегодня в часовом поясе школы
func (h *Handler) dateParam(r *http.Request) (model.Date, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.lessons.Today(), nil
	}
	return model.ParseDate(raw)
}
