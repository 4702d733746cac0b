package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния для добавления занятия
	StateAddLessonType       UserState = "add_lesson_type"
	StateAddLessonInstrument UserState = "add_lesson_instrument"
	StateAddLessonTeacher    UserState = "add_lesson_teacher"
	StateAddLessonRoom       UserState = "add_lesson_room"
	StateAddLessonDate       UserState = "add_lesson_date"
	StateAddLessonTime       UserState = "add_lesson_time"
	StateAddLessonDuration   UserState = "add_lesson_duration"
	StateAddLessonRecurrence UserState = "add_lesson_recurrence"
	StateAddLessonCount      UserState = "add_lesson_count"

	// Ждём строку поиска после /search без аргумента
	StateSearch UserState = "search"
)

// KeyLessonInput ключ черновика занятия в данных диалога
const KeyLessonInput = "lesson_input"

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
