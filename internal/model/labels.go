package model

var lessonTypeLabels = map[LessonType]string{
	LessonTypeIndividualStationary: "Lekcja indywidualna",
	LessonTypeIndividualOnline:     "Lekcja online",
	LessonTypeGroup:                "Zajęcia grupowe",
	LessonTypeChildren:             "Zajęcia dla dzieci",
	LessonTypeAcademy:              "Akademia",
	LessonTypeResidency:            "Rezydencja",
	LessonTypePracticeRoom:         "Sala prób",
	LessonTypeConcertHall:          "Studio koncertowe",
}

// Label польское название для расписания
func (t LessonType) Label() string {
	if l, ok := lessonTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

var frequencyLabels = map[RecurrenceFrequency]string{
	FrequencyDaily:    "Codziennie",
	FrequencyWeekly:   "Co tydzień",
	FrequencyBiweekly: "Co 2 tygodnie",
	FrequencyMonthly:  "Co miesiąc",
}

func (f RecurrenceFrequency) Label() string {
	if l, ok := frequencyLabels[f]; ok {
		return l
	}
	return string(f)
}

// Summary название занятия, а без него тип и инструмент
func (t LessonTemplate) Summary() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Instrument == "" {
		return t.Type.Label()
	}
	return t.Type.Label() + " - " + t.Instrument
}
