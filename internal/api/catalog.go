package api

import (
	"net/http"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.Rooms())
}

// AvailableRooms залы, подходящие для ?type= и ?instrument=
func (h *Handler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	WriteJSON(w, http.StatusOK, h.catalog.AvailableRooms(model.LessonType(q.Get("type")), q.Get("instrument")))
}

func (h *Handler) ListTeachers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.Teachers())
}

// AvailableTeachers учителя инструмента ?instrument=
func (h *Handler) AvailableTeachers(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.AvailableTeachers(r.URL.Query().Get("instrument")))
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.Students())
}

func (h *Handler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.Instruments())
}

type lessonTypeResponse struct {
	Value model.LessonType `json:"value"`
	Label string           `json:"label"`
}

func (h *Handler) ListLessonTypes(w http.ResponseWriter, r *http.Request) {
	out := make([]lessonTypeResponse, 0, len(model.AllLessonTypes()))
	for _, t := range model.AllLessonTypes() {
		out = append(out, lessonTypeResponse{Value: t, Label: t.Label()})
	}
	WriteJSON(w, http.StatusOK, out)
}
