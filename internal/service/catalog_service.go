package service

import (
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// Catalog справочники школы
type Catalog interface {
	Rooms() []model.Room
	Teachers() []model.Teacher
	Students() []model.Student
	Instruments() []model.Instrument
}

type CatalogService struct {
	catalog Catalog
}

func NewCatalogService(catalog Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Rooms() []model.Room { return s.catalog.Rooms() }

func (s *CatalogService) Teachers() []model.Teacher { return s.catalog.Teachers() }

func (s *CatalogService) Students() []model.Student { return s.catalog.Students() }

func (s *CatalogService) Instruments() []model.Instrument { return s.catalog.Instruments() }

// AvailableTeachers учителя, которые ведут инструмент. Пустой инструмент - все учителя.
func (s *CatalogService) AvailableTeachers(instrument string) []model.Teacher {
	out := make([]model.Teacher, 0)
	for _, t := range s.catalog.Teachers() {
		if t.Teaches(instrument) {
			out = append(out, t)
		}
	}
	return out
}

// AvailableRooms залы, подходящие для инструмента. Онлайн-занятиям зал не нужен.
func (s *CatalogService) AvailableRooms(lessonType model.LessonType, instrument string) []model.Room {
	out := make([]model.Room, 0)
	if lessonType.Online() {
		return out
	}
	for _, r := range s.catalog.Rooms() {
		if r.Supports(instrument) {
			out = append(out, r)
		}
	}
	return out
}

// StudentNames имена учеников по ID для отображения. Неизвестные ID остаются как есть.
func (s *CatalogService) StudentNames(ids []string) []string {
	byID := make(map[string]string)
	for _, st := range s.catalog.Students() {
		byID[st.ID] = st.FullName()
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			out = append(out, name)
		} else {
			out = append(out, id)
		}
	}
	return out
}
