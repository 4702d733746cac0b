package events

import (
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

// Broadcaster превращает изменения занятий в сообщения хаба
type Broadcaster struct {
	hub    *Hub
	now    func() time.Time
	logger *zap.Logger
}

func NewBroadcaster(hub *Hub, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, now: time.Now, logger: logger}
}

func (b *Broadcaster) LessonsCreated(lessons []model.Lesson) {
	b.send(TypeLessonsCreated, lessonsPayload(lessons...))
}

func (b *Broadcaster) LessonUpdated(before, after model.Lesson) {
	p := lessonsPayload(after)
	if before.Day() != after.Day() {
		p.Days = append([]model.Date{before.Day()}, p.Days...)
	}
	b.send(TypeLessonUpdated, p)
}

func (b *Broadcaster) LessonDeleted(lesson model.Lesson) {
	b.send(TypeLessonDeleted, lessonsPayload(lesson))
}

func (b *Broadcaster) PaymentChanged(lesson model.Lesson, studentID string) {
	b.send(TypePaymentChanged, PaymentPayload{
		LessonID:  lesson.ID,
		Day:       lesson.Day(),
		StudentID: studentID,
		Paid:      lesson.StudentPayments[studentID],
		Status:    schedule.PaymentStatusOf(lesson),
	})
}

func (b *Broadcaster) send(t MessageType, payload any) {
	data, err := NewMessage(t, payload, b.now()).JSON()
	if err != nil {
		b.logger.Error("Failed to encode event", zap.String("type", string(t)), zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}

// lessonsPayload собирает ID и различные дни в порядке появления
func lessonsPayload(lessons ...model.Lesson) LessonsPayload {
	p := LessonsPayload{LessonIDs: make([]string, 0, len(lessons)), Days: make([]model.Date, 0)}
	seen := make(map[model.Date]bool)
	for _, l := range lessons {
		p.LessonIDs = append(p.LessonIDs, l.ID)
		if d := l.Day(); !seen[d] {
			seen[d] = true
			p.Days = append(p.Days, d)
		}
	}
	return p
}
