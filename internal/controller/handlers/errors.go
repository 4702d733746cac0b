package handlers

import (
	"errors"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoDraft       = errors.New("no lesson draft in dialog")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, repository.ErrLessonNotFound):
		return "❌ Nie znaleziono zajęć"
	case errors.Is(err, service.ErrStudentNotEnrolled):
		return "❌ Uczeń nie jest zapisany na te zajęcia"
	case errors.Is(err, schedule.ErrInvalidPolicy):
		return "❌ Nieprawidłowe powtarzanie (od 1 do 52 terminów)"
	case errors.Is(err, service.ErrValidation):
		return "❌ Nieprawidłowe dane zajęć: " + err.Error()
	case errors.Is(err, model.ErrInvalidDate):
		return "❌ Nieprawidłowa data. Użyj formatu 15.01.2024 lub 2024-01-15"
	case errors.Is(err, model.ErrInvalidClock):
		return "❌ Nieprawidłowa godzina. Użyj formatu 9:00 lub 17:30"
	case errors.Is(err, ErrNoMessage):
		return "❌ Błąd obsługi wiadomości"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Nieprawidłowy format danych"
	case errors.Is(err, ErrNoDraft):
		return "❌ Sesja dodawania wygasła. Zacznij od nowa: /addlesson"
	default:
		return "❌ Wystąpił błąd. Spróbuj ponownie później."
	}
}
