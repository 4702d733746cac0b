package schedule

import "github.com/Freeeeeet/music_school_scheduler/internal/model"

// PaymentStatusOf считает оплативших учеников из списка занятия.
// Отметки учеников, которых уже нет в списке, не учитываются.
func PaymentStatusOf(l model.Lesson) model.PaymentStatus {
	status := model.PaymentStatus{Total: len(l.Students)}
	for _, s := range l.Students {
		if l.StudentPayments[s] {
			status.Paid++
		}
	}
	return status
}
