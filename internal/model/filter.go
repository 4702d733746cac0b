package model

import "fmt"

type FilterCategory string

const (
	FilterTeacher    FilterCategory = "teacher"
	FilterRoom       FilterCategory = "room"
	FilterInstrument FilterCategory = "instrument"
	FilterLessonType FilterCategory = "type"
)

// FilterSet сужает расписание. Пустая категория ничего не ограничивает,
// значения внутри категории работают как ИЛИ, категории между собой как И.
type FilterSet struct {
	Teachers    []string `json:"teachers"`
	Rooms       []string `json:"rooms"`
	Instruments []string `json:"instruments"`
	LessonTypes []string `json:"lesson_types"`
}

func (f *FilterSet) values(c FilterCategory) (*[]string, error) {
	switch c {
	case FilterTeacher:
		return &f.Teachers, nil
	case FilterRoom:
		return &f.Rooms, nil
	case FilterInstrument:
		return &f.Instruments, nil
	case FilterLessonType:
		return &f.LessonTypes, nil
	}
	return nil, fmt.Errorf("unknown filter category %q", c)
}

// Add добавляет значение в категорию. Пустые и повторные значения игнорируются.
func (f *FilterSet) Add(c FilterCategory, value string) error {
	vals, err := f.values(c)
	if err != nil {
		return err
	}
	if value == "" || contains(*vals, value) {
		return nil
	}
	*vals = append(*vals, value)
	return nil
}

func (f *FilterSet) Remove(c FilterCategory, value string) error {
	vals, err := f.values(c)
	if err != nil {
		return err
	}
	kept := (*vals)[:0:0]
	for _, v := range *vals {
		if v != value {
			kept = append(kept, v)
		}
	}
	*vals = kept
	return nil
}

func (f *FilterSet) Clear() {
	*f = FilterSet{}
}

func (f FilterSet) HasActive() bool {
	return f.Count() > 0
}

// Count число активных значений фильтров во всех категориях
func (f FilterSet) Count() int {
	return len(f.Teachers) + len(f.Rooms) + len(f.Instruments) + len(f.LessonTypes)
}

func (f FilterSet) Clone() FilterSet {
	return FilterSet{
		Teachers:    append([]string(nil), f.Teachers...),
		Rooms:       append([]string(nil), f.Rooms...),
		Instruments: append([]string(nil), f.Instruments...),
		LessonTypes: append([]string(nil), f.LessonTypes...),
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
