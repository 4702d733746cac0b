package schedule

import (
	"sort"
	"strings"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// Query занятия дня, прошедшие все активные категории фильтров,
// по времени начала. При одинаковом начале сохраняется исходный порядок.
// Входной срез не изменяется.
func Query(lessons []model.Lesson, day model.Date, filters model.FilterSet) []model.Lesson {
	out := make([]model.Lesson, 0)
	for _, l := range lessons {
		if l.Day() == day && Matches(l, filters) {
			out = append(out, l)
		}
	}
	SortByStart(out)
	return out
}

// InRange занятия по запрошенным дням, отфильтрованные и отсортированные как в Query
func InRange(lessons []model.Lesson, days []model.Date, filters model.FilterSet) map[model.Date][]model.Lesson {
	wanted := make(map[model.Date]bool, len(days))
	out := make(map[model.Date][]model.Lesson, len(days))
	for _, d := range days {
		wanted[d] = true
		out[d] = []model.Lesson{}
	}
	for _, l := range lessons {
		d := l.Day()
		if wanted[d] && Matches(l, filters) {
			out[d] = append(out[d], l)
		}
	}
	for d := range out {
		SortByStart(out[d])
	}
	return out
}

// Matches применяет фильтры категорий к одному занятию.
// Занятие без зала фильтр по залам не отсекает.
func Matches(l model.Lesson, f model.FilterSet) bool {
	if len(f.Teachers) > 0 && !in(f.Teachers, l.Teacher) {
		return false
	}
	if len(f.Rooms) > 0 && l.Room != "" && !in(f.Rooms, l.Room) {
		return false
	}
	if len(f.Instruments) > 0 && !in(f.Instruments, l.Instrument) {
		return false
	}
	if len(f.LessonTypes) > 0 && !in(f.LessonTypes, string(l.Type)) {
		return false
	}
	return true
}

// Search оставляет занятия, у которых term встречается в названии, учителе, инструменте
// или у кого-то из учеников, без учёта регистра. Пустой term оставляет всё.
func Search(lessons []model.Lesson, term string) []model.Lesson {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return lessons
	}
	out := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if matchesTerm(l, term) {
			out = append(out, l)
		}
	}
	return out
}

func matchesTerm(l model.Lesson, term string) bool {
	for _, field := range []string{l.Title, l.Teacher, l.Instrument} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, s := range l.Students {
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

func SortByStart(lessons []model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].StartTime < lessons[j].StartTime
	})
}

func in(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
