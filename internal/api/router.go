// Package api REST API расписания в формате JSON.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/events"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

type Handler struct {
	lessons   *service.LessonService
	catalog   *service.CatalogService
	weekStart time.Weekday
	hub       *events.Hub
	logger    *zap.Logger
}

func NewHandler(lessons *service.LessonService, catalog *service.CatalogService, weekStart time.Weekday, logger *zap.Logger) *Handler {
	return &Handler{
		lessons:   lessons,
		catalog:   catalog,
		weekStart: weekStart,
		logger:    logger,
	}
}

// WithHub включает WebSocket с обновлениями расписания
func (h *Handler) WithHub(hub *events.Hub) *Handler {
	h.hub = hub
	return h
}

// NewRouter создает HTTP-роутер со всеми маршрутами API
func NewRouter(h *Handler, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(Logging(logger))
	r.Use(Recovery(logger))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Занятия
	api.HandleFunc("/lessons", h.ListLessons).Methods(http.MethodGet)
	api.HandleFunc("/lessons", h.CreateLesson).Methods(http.MethodPost)
	api.HandleFunc("/lessons/{id}", h.GetLesson).Methods(http.MethodGet)
	api.HandleFunc("/lessons/{id}", h.UpdateLesson).Methods(http.MethodPut)
	api.HandleFunc("/lessons/{id}", h.DeleteLesson).Methods(http.MethodDelete)
	api.HandleFunc("/lessons/{id}/payments/{studentID}/toggle", h.TogglePayment).Methods(http.MethodPost)

	// Календарь
	api.HandleFunc("/calendar", h.Calendar).Methods(http.MethodGet)
	api.HandleFunc("/calendar.ics", h.CalendarICS).Methods(http.MethodGet)
	api.HandleFunc("/calendar/week.png", h.CalendarWeekPNG).Methods(http.MethodGet)

	// Справочники
	api.HandleFunc("/rooms", h.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/available", h.AvailableRooms).Methods(http.MethodGet)
	api.HandleFunc("/teachers", h.ListTeachers).Methods(http.MethodGet)
	api.HandleFunc("/teachers/available", h.AvailableTeachers).Methods(http.MethodGet)
	api.HandleFunc("/students", h.ListStudents).Methods(http.MethodGet)
	api.HandleFunc("/instruments", h.ListInstruments).Methods(http.MethodGet)
	api.HandleFunc("/lesson-types", h.ListLessonTypes).Methods(http.MethodGet)

	// Обновления в реальном времени
	if h.hub != nil {
		api.HandleFunc("/ws", h.WebSocket).Methods(http.MethodGet)
	}

	return r
}

// Health проверка, что сервис отвечает
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
