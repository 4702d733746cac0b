package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

// LessonResponse занятие в ответах API
type LessonResponse struct {
	model.Lesson
	EndTime      model.ClockTime     `json:"end_time"`
	TypeLabel    string              `json:"type_label"`
	Payment      model.PaymentStatus `json:"payment"`
	PaymentState model.PaymentState  `json:"payment_state"`
}

func toResponse(l model.Lesson) LessonResponse {
	status := schedule.PaymentStatusOf(l)
	return LessonResponse{
		Lesson:       l,
		EndTime:      l.EndTime(),
		TypeLabel:    l.Type.Label(),
		Payment:      status,
		PaymentState: status.State(),
	}
}

func toResponses(lessons []model.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, toResponse(l))
	}
	return out
}

// ListLessons занятия одного дня (?date=) или все занятия, с фильтрами
func (h *Handler) ListLessons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := filtersFromQuery(q)
	search := q.Get("q")

	var (
		lessons []model.Lesson
		err     error
	)
	if raw := q.Get("date"); raw != "" {
		day, perr := model.ParseDate(raw)
		if perr != nil {
			WriteError(w, http.StatusBadRequest, ErrBadRequest, perr.Error())
			return
		}
		lessons, err = h.lessons.DaySchedule(r.Context(), day, filters, search)
	} else {
		lessons, err = h.lessons.ListLessons(r.Context(), filters, search)
	}
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toResponses(lessons))
}

// CreateLesson добавляет занятие или серию повторений
func (h *Handler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var in service.LessonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "Invalid JSON body: "+err.Error())
		return
	}

	lessons, err := h.lessons.CreateLesson(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toResponses(lessons))
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessons.GetLesson(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toResponse(lesson))
}

func (h *Handler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	var in service.LessonInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, ErrBadRequest, "Invalid JSON body: "+err.Error())
		return
	}

	lesson, err := h.lessons.UpdateLesson(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toResponse(lesson))
}

func (h *Handler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	if err := h.lessons.DeleteLesson(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) TogglePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	lesson, err := h.lessons.TogglePayment(r.Context(), vars["id"], vars["studentID"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toResponse(lesson))
}

// writeServiceError сопоставляет ошибки сервиса со статусами HTTP
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrLessonNotFound):
		WriteError(w, http.StatusNotFound, ErrNotFound, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, schedule.ErrInvalidPolicy),
		errors.Is(err, service.ErrStudentNotEnrolled):
		WriteError(w, http.StatusBadRequest, ErrValidation, err.Error())
	default:
		h.logger.Error("Request failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, ErrInternalError, "Internal error")
	}
}

// filtersFromQuery читает повторяемые параметры фильтров из запроса
func filtersFromQuery(q url.Values) model.FilterSet {
	var f model.FilterSet
	for _, c := range []model.FilterCategory{model.FilterTeacher, model.FilterRoom, model.FilterInstrument, model.FilterLessonType} {
		for _, v := range q[string(c)] {
			_ = f.Add(c, v)
		}
	}
	return f
}
