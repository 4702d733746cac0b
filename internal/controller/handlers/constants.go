package handlers

// Ограничения диалога добавления занятия
const (
	DefaultLessonDuration = 45
	MaxSearchResults      = 20
	// Telegram не принимает callback data длиннее 64 байт
	MaxCallbackDataLength = 64
)

// LessonDurations варианты длительности на кнопках
var LessonDurations = []int{30, 45, 60, 90, 120}
