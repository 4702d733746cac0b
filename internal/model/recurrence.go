package model

type RecurrenceFrequency string

const (
	FrequencyDaily    RecurrenceFrequency = "daily"
	FrequencyWeekly   RecurrenceFrequency = "weekly"
	FrequencyBiweekly RecurrenceFrequency = "biweekly"
	FrequencyMonthly  RecurrenceFrequency = "monthly"
)

// AllFrequencies частоты в порядке, в котором их предлагают пользователю
func AllFrequencies() []RecurrenceFrequency {
	return []RecurrenceFrequency{FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly}
}

func (f RecurrenceFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// RecurrencePolicy сколько повторений создать и с каким шагом.
// Count включает первое занятие.
type RecurrencePolicy struct {
	Frequency RecurrenceFrequency `json:"frequency" yaml:"frequency"`
	Count     int                 `json:"count" yaml:"count"`
}

// Single правило для занятия без повторений
func Single() RecurrencePolicy {
	return RecurrencePolicy{Frequency: FrequencyWeekly, Count: 1}
}
