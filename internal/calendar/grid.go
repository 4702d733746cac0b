package calendar

import (
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

const (
	firstHour = 8
	lastHour  = 22
	// MonthCellLimit сколько занятий показывает ячейка месяца до "+N"
	MonthCellLimit = 3
)

// HourSlots строки сетки дня и недели, с 08:00 до 22:00
func HourSlots() []model.ClockTime {
	out := make([]model.ClockTime, 0, lastHour-firstHour+1)
	for h := firstHour; h <= lastHour; h++ {
		out = append(out, model.ClockTime(h*60))
	}
	return out
}

type Slot struct {
	Time    model.ClockTime `json:"time"`
	Lessons []model.Lesson  `json:"lessons"`
}

// DayGrid кладёт занятие в строку часа, на который приходится начало.
// Занятия вне часов сетки возвращаются отдельно.
func DayGrid(lessons []model.Lesson) (slots []Slot, outside []model.Lesson) {
	slots = make([]Slot, 0, lastHour-firstHour+1)
	for _, t := range HourSlots() {
		slots = append(slots, Slot{Time: t, Lessons: []model.Lesson{}})
	}
	outside = []model.Lesson{}

	for _, l := range lessons {
		h := l.StartTime.Hour()
		if h < firstHour || h > lastHour {
			outside = append(outside, l)
			continue
		}
		slots[h-firstHour].Lessons = append(slots[h-firstHour].Lessons, l)
	}
	return slots, outside
}

type MonthCell struct {
	Date    model.Date     `json:"date"`
	InMonth bool           `json:"in_month"`
	Lessons []model.Lesson `json:"lessons"`
	Hidden  int            `json:"hidden"`
}

// MonthCells сетка месяца, не больше MonthCellLimit занятий в дне
func MonthCells(current model.Date, days []model.Date, byDay map[model.Date][]model.Lesson) []MonthCell {
	cells := make([]MonthCell, 0, len(days))
	for _, d := range days {
		lessons := byDay[d]
		cell := MonthCell{
			Date:    d,
			InMonth: d.Year == current.Year && d.Month == current.Month,
			Lessons: lessons,
		}
		if len(lessons) > MonthCellLimit {
			cell.Lessons = lessons[:MonthCellLimit]
			cell.Hidden = len(lessons) - MonthCellLimit
		}
		if cell.Lessons == nil {
			cell.Lessons = []model.Lesson{}
		}
		cells = append(cells, cell)
	}
	return cells
}
