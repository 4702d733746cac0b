// Package seed начальные данные школы: залы, учителя,
// ученики и несколько занятий для пустого расписания.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

//go:embed default.yaml
var defaultDataset []byte

// Lesson занятие в наборе данных. На календарь его ставит Date или DayOffset (дни от
// даты загрузки). Recurrence разворачивает его в серию.
type Lesson struct {
	model.LessonTemplate `yaml:",inline"`
	ID                   string                  `yaml:"id,omitempty"`
	DayOffset            *int                    `yaml:"day_offset,omitempty"`
	Recurrence           *model.RecurrencePolicy `yaml:"recurrence,omitempty"`
}

type Dataset struct {
	Rooms       []model.Room       `yaml:"rooms"`
	Teachers    []model.Teacher    `yaml:"teachers"`
	Students    []model.Student    `yaml:"students"`
	Instruments []model.Instrument `yaml:"instruments,omitempty"`
	Lessons     []Lesson           `yaml:"lessons"`
}

// Default встроенный набор данных
func Default() (*Dataset, error) {
	return Parse(defaultDataset)
}

// Load читает набор данных из path. Пустой path означает встроенный набор.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) validate() error {
	for i, l := range ds.Lessons {
		if l.DayOffset == nil && l.Date.IsZero() {
			return fmt.Errorf("seed lesson %d: date or day_offset is required", i)
		}
		if !l.Type.Valid() {
			return fmt.Errorf("seed lesson %d: unknown type %q", i, l.Type)
		}
		if l.Duration <= 0 {
			return fmt.Errorf("seed lesson %d: duration must be positive", i)
		}
	}
	return nil
}

// Templates ставит занятия на календарь относительно сегодняшнего дня в loc
func (ds *Dataset) Templates(today model.Date, loc *time.Location) []Lesson {
	out := make([]Lesson, 0, len(ds.Lessons))
	for _, l := range ds.Lessons {
		placed := l
		placed.LessonTemplate = l.LessonTemplate.Clone()
		if l.DayOffset != nil {
			placed.Date = today.AddDays(*l.DayOffset).In(loc)
		} else {
			placed.Date = model.DateOf(l.Date).In(loc)
		}
		out = append(out, placed)
	}
	return out
}
