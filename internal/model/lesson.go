package model

import "time"

type LessonType string

const (
	LessonTypeIndividualStationary LessonType = "individual-stationary"
	LessonTypeIndividualOnline     LessonType = "individual-online"
	LessonTypeGroup                LessonType = "group"
	LessonTypeChildren             LessonType = "children"
	LessonTypeAcademy              LessonType = "academy"
	LessonTypeResidency            LessonType = "residency"
	LessonTypePracticeRoom         LessonType = "practice-room"
	LessonTypeConcertHall          LessonType = "concert-hall"
)

// AllLessonTypes типы занятий в порядке, в котором их предлагают пользователю
func AllLessonTypes() []LessonType {
	return []LessonType{
		LessonTypeIndividualStationary,
		LessonTypeIndividualOnline,
		LessonTypeGroup,
		LessonTypeChildren,
		LessonTypeAcademy,
		LessonTypeResidency,
		LessonTypePracticeRoom,
		LessonTypeConcertHall,
	}
}

func (t LessonType) Valid() bool {
	for _, known := range AllLessonTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Онлайн-занятиям зал не нужен
func (t LessonType) Online() bool {
	return t == LessonTypeIndividualOnline
}

type PriceType string

const (
	PriceTypeTotal     PriceType = "total"
	PriceTypePerPerson PriceType = "per-person"
)

// LessonTemplate всё о занятии, кроме ID.
// Teacher, Room и Instrument хранят имена на момент создания.
type LessonTemplate struct {
	Type            LessonType      `json:"type" yaml:"type"`
	Date            time.Time       `json:"date" yaml:"date"`
	StartTime       ClockTime       `json:"start_time" yaml:"start_time"`
	Duration        int             `json:"duration" yaml:"duration"` // в минутах
	Teacher         string          `json:"teacher" yaml:"teacher"`
	Room            string          `json:"room,omitempty" yaml:"room,omitempty"` // пусто - без зала
	Instrument      string          `json:"instrument" yaml:"instrument"`
	Students        []string        `json:"students" yaml:"students"` // ID учеников
	MaxParticipants int             `json:"max_participants" yaml:"max_participants"`
	PriceType       PriceType       `json:"price_type" yaml:"price_type"`
	Price           int             `json:"price" yaml:"price"` // в грошах
	Title           string          `json:"title,omitempty" yaml:"title,omitempty"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty"`
	StudentPayments map[string]bool `json:"student_payments" yaml:"student_payments"`
}

// EndTime всегда считается из начала и длительности
func (t LessonTemplate) EndTime() ClockTime {
	return t.StartTime.Add(t.Duration)
}

// Day календарный день занятия в его часовом поясе
func (t LessonTemplate) Day() Date {
	return DateOf(t.Date)
}

// StartsAt дата и время начала в часовом поясе даты.
// Начало задано по настенным часам, поэтому в дни перевода часов час не сдвигается.
func (t LessonTemplate) StartsAt() time.Time {
	d := t.Day()
	return time.Date(d.Year, d.Month, d.Day, 0, int(t.StartTime), 0, 0, t.Date.Location())
}

// Clone копия без общих срезов и карт с t
func (t LessonTemplate) Clone() LessonTemplate {
	c := t
	if t.Students != nil {
		c.Students = append([]string(nil), t.Students...)
	}
	if t.StudentPayments != nil {
		c.StudentPayments = make(map[string]bool, len(t.StudentPayments))
		for k, v := range t.StudentPayments {
			c.StudentPayments[k] = v
		}
	}
	return c
}

type Lesson struct {
	ID string `json:"id" yaml:"id"`
	LessonTemplate `yaml:",inline"`
}

func (l Lesson) Clone() Lesson {
	return Lesson{ID: l.ID, LessonTemplate: l.LessonTemplate.Clone()}
}

// HasStudent записан ли ученик на занятие
func (l Lesson) HasStudent(studentID string) bool {
	for _, s := range l.Students {
		if s == studentID {
			return true
		}
	}
	return false
}
