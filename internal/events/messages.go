package events

import (
	"encoding/json"
	"time"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

type MessageType string

const (
	TypeLessonsCreated MessageType = "lessons.created"
	TypeLessonUpdated  MessageType = "lesson.updated"
	TypeLessonDeleted  MessageType = "lesson.deleted"
	TypePaymentChanged MessageType = "lesson.payment_changed"
)

// Message конверт любого отправляемого события
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

func NewMessage(msgType MessageType, payload any, now time.Time) Message {
	return Message{
		Type:      msgType,
		Timestamp: now.UTC(),
		Payload:   payload,
	}
}

func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// LessonsPayload затронутые занятия и дни, которые клиенту нужно обновить
type LessonsPayload struct {
	LessonIDs []string     `json:"lesson_ids"`
	Days      []model.Date `json:"days"`
}

type PaymentPayload struct {
	LessonID  string              `json:"lesson_id"`
	Day       model.Date          `json:"day"`
	StudentID string              `json:"student_id"`
	Paid      bool                `json:"paid"`
	Status    model.PaymentStatus `json:"status"`
}
