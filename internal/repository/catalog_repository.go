package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// CatalogRepository хранит справочники школы: залы, учителей, учеников и инструменты
type CatalogRepository struct {
	mu          sync.RWMutex
	rooms       []model.Room
	teachers    []model.Teacher
	students    []model.Student
	instruments []model.Instrument
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Replace полностью заменяет содержимое справочников.
// Если instruments пуст, список инструментов строится по навыкам учителей.
func (r *CatalogRepository) Replace(rooms []model.Room, teachers []model.Teacher, students []model.Student, instruments []model.Instrument) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = append([]model.Room(nil), rooms...)
	r.teachers = append([]model.Teacher(nil), teachers...)
	r.students = append([]model.Student(nil), students...)
	if len(instruments) == 0 {
		instruments = InstrumentsFromTeachers(teachers)
	}
	r.instruments = append([]model.Instrument(nil), instruments...)
}

func (r *CatalogRepository) Rooms() []model.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Room(nil), r.rooms...)
}

func (r *CatalogRepository) Teachers() []model.Teacher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Teacher(nil), r.teachers...)
}

func (r *CatalogRepository) Students() []model.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Student(nil), r.students...)
}

func (r *CatalogRepository) Instruments() []model.Instrument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Instrument(nil), r.instruments...)
}

// RoomByName ищет зал по названию (занятия хранят название, а не ID)
func (r *CatalogRepository) RoomByName(name string) (model.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms {
		if room.Name == name {
			return room, true
		}
	}
	return model.Room{}, false
}

func (r *CatalogRepository) TeacherByName(name string) (model.Teacher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.teachers {
		if t.Name == name {
			return t, true
		}
	}
	return model.Teacher{}, false
}

func (r *CatalogRepository) StudentByID(id string) (model.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.students {
		if s.ID == id {
			return s, true
		}
	}
	return model.Student{}, false
}

// InstrumentsFromTeachers строит каталог инструментов из навыков учителей.
// Инструмент доступен, если его ведёт хотя бы один доступный учитель.
func InstrumentsFromTeachers(teachers []model.Teacher) []model.Instrument {
	available := make(map[string]bool)
	for _, t := range teachers {
		for _, name := range t.Instruments {
			available[name] = available[name] || t.Available
		}
	}

	names := make([]string, 0, len(available))
	for name := range available {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.Instrument, 0, len(names))
	for _, name := range names {
		out = append(out, model.Instrument{
			ID:        instrumentID(name),
			Name:      name,
			Type:      instrumentFamily(name),
			Available: available[name],
		})
	}
	return out
}

func instrumentID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

var families = map[string]string{
	"fortepian":     "klawiszowe",
	"pianino":       "klawiszowe",
	"keyboard":      "klawiszowe",
	"organy":        "klawiszowe",
	"gitara":        "strunowe",
	"gitara basowa": "strunowe",
	"skrzypce":      "smyczkowe",
	"altówka":       "smyczkowe",
	"wiolonczela":   "smyczkowe",
	"kontrabas":     "smyczkowe",
	"flet":          "dęte",
	"klarnet":       "dęte",
	"saksofon":      "dęte",
	"trąbka":        "dęte",
	"perkusja":      "perkusyjne",
	"śpiew":         "wokal",
	"wokal":         "wokal",
}

func instrumentFamily(name string) string {
	if f, ok := families[strings.ToLower(name)]; ok {
		return f
	}
	return "inne"
}
