package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// MaxOccurrences предел повторений в одном запросе
const MaxOccurrences = 52

var ErrInvalidPolicy = errors.New("invalid recurrence policy")

// IDGenerator возвращает новый ID занятия при каждом вызове
type IDGenerator func() string

// NewID генератор по умолчанию
func NewID() string {
	return uuid.NewString()
}

// Expand разворачивает шаблон и правило повторения в конкретные занятия.
// Повторение i приходится на i дней, недель, двухнедельных периодов или месяцев после даты шаблона.
// Если в целевом месяце нет такого числа, ежемесячное занятие переносится на последний день месяца.
// Занятия возвращаются в порядке повторений, конфликты не проверяются.
func Expand(template model.LessonTemplate, policy model.RecurrencePolicy, newID IDGenerator) ([]model.Lesson, error) {
	if policy.Count < 1 || policy.Count > MaxOccurrences {
		return nil, fmt.Errorf("%w: count %d outside 1..%d", ErrInvalidPolicy, policy.Count, MaxOccurrences)
	}
	if policy.Frequency != "" && !policy.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidPolicy, policy.Frequency)
	}
	if newID == nil {
		newID = NewID
	}

	if policy.Count == 1 {
		return []model.Lesson{{ID: newID(), LessonTemplate: template.Clone()}}, nil
	}

	dates, err := occurrenceDates(template.Date, policy)
	if err != nil {
		return nil, err
	}

	lessons := make([]model.Lesson, 0, len(dates))
	for _, date := range dates {
		t := template.Clone()
		t.Date = date
		lessons = append(lessons, model.Lesson{ID: newID(), LessonTemplate: t})
	}
	return lessons, nil
}

func occurrenceDates(start time.Time, policy model.RecurrencePolicy) ([]time.Time, error) {
	opt, err := ruleOption(start, policy)
	if err != nil {
		return nil, err
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build rule: %w", err)
	}

	dates := r.All()
	if len(dates) != policy.Count {
		return nil, fmt.Errorf("rule produced %d occurrences, want %d", len(dates), policy.Count)
	}
	return dates, nil
}

func ruleOption(start time.Time, policy model.RecurrencePolicy) (rrule.ROption, error) {
	opt := rrule.ROption{
		Dtstart:  start,
		Count:    policy.Count,
		Interval: 1,
	}

	switch policy.Frequency {
	case model.FrequencyDaily:
		opt.Freq = rrule.DAILY
	case model.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
	case model.FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case model.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday, opt.Bysetpos = monthlyDays(start.Day())
	default:
		return rrule.ROption{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidPolicy, policy.Frequency)
	}
	return opt, nil
}

// monthlyDays подбирает BYMONTHDAY/BYSETPOS так, чтобы число месяца сохранялось,
// а в более коротком месяце заменялось последним днём.
// 28-е число есть в любом месяце, поэтому набор 28..day не пуст.
func monthlyDays(day int) ([]int, []int) {
	if day <= 28 {
		return []int{day}, nil
	}
	days := make([]int, 0, day-27)
	for d := 28; d <= day; d++ {
		days = append(days, d)
	}
	return days, []int{-1}
}

// AddMonthsClamped сдвигает d на n месяцев с тем же числом, либо на последний день
// целевого месяца, если он короче.
func AddMonthsClamped(d model.Date, n int) model.Date {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	target := model.DateOf(first)
	if last := target.DaysIn(); d.Day > last {
		target.Day = last
	} else {
		target.Day = d.Day
	}
	return target
}
