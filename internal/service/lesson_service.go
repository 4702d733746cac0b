package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrStudentNotEnrolled = errors.New("student is not enrolled in the lesson")
)

// LessonStore хранилище занятий
type LessonStore interface {
	CreateBatch(ctx context.Context, lessons []model.Lesson) error
	GetByID(ctx context.Context, id string) (model.Lesson, error)
	List(ctx context.Context) ([]model.Lesson, error)
	Modify(ctx context.Context, id string, fn func(l *model.Lesson) error) (model.Lesson, error)
	Delete(ctx context.Context, id string) error
}

// RoomLookup нужен для подстановки вместимости зала
type RoomLookup interface {
	RoomByName(name string) (model.Room, bool)
	StudentByID(id string) (model.Student, bool)
}

// ChangeNotifier получает уведомления об изменениях расписания
type ChangeNotifier interface {
	LessonsCreated(lessons []model.Lesson)
	LessonUpdated(before, after model.Lesson)
	LessonDeleted(lesson model.Lesson)
	PaymentChanged(lesson model.Lesson, studentID string)
}

type nopNotifier struct{}

func (nopNotifier) LessonsCreated([]model.Lesson)           {}
func (nopNotifier) LessonUpdated(model.Lesson, model.Lesson) {}
func (nopNotifier) LessonDeleted(model.Lesson)              {}
func (nopNotifier) PaymentChanged(model.Lesson, string)     {}

// LessonInput данные формы добавления или редактирования занятия
type LessonInput struct {
	Type            model.LessonType        `json:"type" validate:"required,lesson_type"`
	Date            model.Date              `json:"date"`
	StartTime       string                  `json:"start_time" validate:"required,clock"`
	Duration        int                     `json:"duration" validate:"min=15,max=480"`
	Teacher         string                  `json:"teacher" validate:"required_unless=Type practice-room"`
	Room            string                  `json:"room" validate:"required_if=Type practice-room"`
	Instrument      string                  `json:"instrument" validate:"required"`
	Students        []string                `json:"students" validate:"dive,required"`
	MaxParticipants int                     `json:"max_participants" validate:"min=0"`
	PriceType       model.PriceType         `json:"price_type" validate:"omitempty,oneof=total per-person"`
	Price           int                     `json:"price" validate:"min=0"`
	Title           string                  `json:"title" validate:"max=200"`
	Description     string                  `json:"description" validate:"max=2000"`
	StudentPayments map[string]bool         `json:"student_payments"`
	Recurrence      *model.RecurrencePolicy `json:"recurrence,omitempty"`
}

type LessonService struct {
	store    LessonStore
	catalog  RoomLookup
	validate *validator.Validate
	newID    schedule.IDGenerator
	notifier ChangeNotifier
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewLessonService(store LessonStore, catalog RoomLookup, location *time.Location, logger *zap.Logger) *LessonService {
	return &LessonService{
		store:    store,
		catalog:  catalog,
		validate: newValidator(),
		newID:    schedule.NewID,
		notifier: nopNotifier{},
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// WithIDGenerator подменяет генератор ID (для тестов и импорта)
func (s *LessonService) WithIDGenerator(gen schedule.IDGenerator) *LessonService {
	s.newID = gen
	return s
}

// WithNotifier подключает получателя уведомлений об изменениях
func (s *LessonService) WithNotifier(n ChangeNotifier) *LessonService {
	if n == nil {
		n = nopNotifier{}
	}
	s.notifier = n
	return s
}

// WithClock подменяет источник текущего времени
func (s *LessonService) WithClock(now func() time.Time) *LessonService {
	s.now = now
	return s
}

// Location часовой пояс, в котором создаются занятия
func (s *LessonService) Location() *time.Location {
	return s.location
}

// Today текущий день в часовом поясе школы
func (s *LessonService) Today() model.Date {
	return model.DateOf(s.now().In(s.location))
}

// CreateLesson проверяет форму, разворачивает повторения и сохраняет всю серию
func (s *LessonService) CreateLesson(ctx context.Context, in LessonInput) ([]model.Lesson, error) {
	s.logger.Info("CreateLesson called",
		zap.String("type", string(in.Type)),
		zap.String("date", in.Date.String()),
		zap.String("start_time", in.StartTime),
		zap.String("teacher", in.Teacher),
		zap.String("room", in.Room))

	tmpl, err := s.templateFromInput(in)
	if err != nil {
		return nil, err
	}

	policy := model.Single()
	if in.Recurrence != nil {
		policy = *in.Recurrence
	}

	return s.AddSeries(ctx, tmpl, policy)
}

// AddSeries сохраняет уже проверенный шаблон как одно или несколько занятий
func (s *LessonService) AddSeries(ctx context.Context, tmpl model.LessonTemplate, policy model.RecurrencePolicy) ([]model.Lesson, error) {
	tmpl = s.applyDefaults(tmpl)

	lessons, err := schedule.Expand(tmpl, policy, s.newID)
	if err != nil {
		s.logger.Warn("Failed to expand recurrence",
			zap.String("frequency", string(policy.Frequency)),
			zap.Int("count", policy.Count),
			zap.Error(err))
		return nil, fmt.Errorf("expand lesson: %w", err)
	}

	if err := s.store.CreateBatch(ctx, lessons); err != nil {
		s.logger.Error("Failed to store lessons",
			zap.Int("count", len(lessons)),
			zap.Error(err))
		return nil, fmt.Errorf("store lessons: %w", err)
	}

	s.logger.Info("Lessons created",
		zap.String("first_id", lessons[0].ID),
		zap.Int("count", len(lessons)),
		zap.String("frequency", string(policy.Frequency)))

	s.notifier.LessonsCreated(lessons)
	return lessons, nil
}

// UpdateLesson заменяет занятие целиком. Повторения при редактировании не применяются.
func (s *LessonService) UpdateLesson(ctx context.Context, id string, in LessonInput) (model.Lesson, error) {
	s.logger.Info("UpdateLesson called", zap.String("lesson_id", id))

	in.Recurrence = nil
	tmpl, err := s.templateFromInput(in)
	if err != nil {
		return model.Lesson{}, err
	}
	tmpl = s.applyDefaults(tmpl)

	var before model.Lesson
	lesson, err := s.store.Modify(ctx, id, func(l *model.Lesson) error {
		before = l.Clone()
		l.LessonTemplate = tmpl.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn("Failed to update lesson",
			zap.String("lesson_id", id),
			zap.Error(err))
		return model.Lesson{}, fmt.Errorf("update lesson: %w", err)
	}

	s.logger.Info("Lesson updated", zap.String("lesson_id", id))
	s.notifier.LessonUpdated(before, lesson)
	return lesson, nil
}

// DeleteLesson удаляет одно занятие (серии не связаны между собой)
func (s *LessonService) DeleteLesson(ctx context.Context, id string) error {
	lesson, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get lesson: %w", err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to delete lesson",
			zap.String("lesson_id", id),
			zap.Error(err))
		return fmt.Errorf("delete lesson: %w", err)
	}

	s.logger.Info("Lesson deleted", zap.String("lesson_id", id))
	s.notifier.LessonDeleted(lesson)
	return nil
}

// GetLesson получает занятие по ID
func (s *LessonService) GetLesson(ctx context.Context, id string) (model.Lesson, error) {
	lesson, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Lesson{}, fmt.Errorf("get lesson: %w", err)
	}
	return lesson, nil
}

// ListLessons возвращает все занятия, опционально отфильтрованные
func (s *LessonService) ListLessons(ctx context.Context, filters model.FilterSet, search string) ([]model.Lesson, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}

	out := make([]model.Lesson, 0, len(all))
	for _, l := range all {
		if schedule.Matches(l, filters) {
			out = append(out, l)
		}
	}
	return schedule.Search(out, search), nil
}

// DaySchedule расписание на день с фильтрами и строкой поиска
func (s *LessonService) DaySchedule(ctx context.Context, day model.Date, filters model.FilterSet, search string) ([]model.Lesson, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return schedule.Search(schedule.Query(all, day, filters), search), nil
}

// LessonsForDays занятия по дням для календарных видов
func (s *LessonService) LessonsForDays(ctx context.Context, days []model.Date, filters model.FilterSet) (map[model.Date][]model.Lesson, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return schedule.InRange(all, days, filters), nil
}

// TogglePayment переключает отметку оплаты ученика
func (s *LessonService) TogglePayment(ctx context.Context, id, studentID string) (model.Lesson, error) {
	// Чтение и запись флага в одной блокировке, иначе параллельные отметки теряются
	lesson, err := s.store.Modify(ctx, id, func(l *model.Lesson) error {
		if !l.HasStudent(studentID) {
			return fmt.Errorf("toggle payment %s: %w", studentID, ErrStudentNotEnrolled)
		}
		if l.StudentPayments == nil {
			l.StudentPayments = make(map[string]bool)
		}
		l.StudentPayments[studentID] = !l.StudentPayments[studentID]
		return nil
	})
	if err != nil {
		return model.Lesson{}, fmt.Errorf("toggle payment: %w", err)
	}

	s.logger.Info("Payment toggled",
		zap.String("lesson_id", id),
		zap.String("student_id", studentID),
		zap.Bool("paid", lesson.StudentPayments[studentID]))

	s.notifier.PaymentChanged(lesson, studentID)
	return lesson, nil
}

// PaymentSummary сводка оплат по занятию
func (s *LessonService) PaymentSummary(lesson model.Lesson) model.PaymentStatus {
	return schedule.PaymentStatusOf(lesson)
}

func (s *LessonService) templateFromInput(in LessonInput) (model.LessonTemplate, error) {
	if err := s.validate.Struct(in); err != nil {
		return model.LessonTemplate{}, validationError(err)
	}
	if in.Date.IsZero() {
		return model.LessonTemplate{}, fmt.Errorf("%w: date is required", ErrValidation)
	}

	for _, id := range in.Students {
		if _, ok := s.catalog.StudentByID(id); !ok {
			return model.LessonTemplate{}, fmt.Errorf("%w: unknown student %q", ErrValidation, id)
		}
	}

	start, err := model.ParseClock(in.StartTime)
	if err != nil {
		return model.LessonTemplate{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	priceType := in.PriceType
	if priceType == "" {
		priceType = model.PriceTypeTotal
	}

	return model.LessonTemplate{
		Type:            in.Type,
		Date:            in.Date.In(s.location),
		StartTime:       start,
		Duration:        in.Duration,
		Teacher:         strings.TrimSpace(in.Teacher),
		Room:            strings.TrimSpace(in.Room),
		Instrument:      strings.TrimSpace(in.Instrument),
		Students:        append([]string(nil), in.Students...),
		MaxParticipants: in.MaxParticipants,
		PriceType:       priceType,
		Price:           in.Price,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		StudentPayments: copyPayments(in.StudentPayments),
	}, nil
}

// applyDefaults онлайн-занятия без зала; вместимость берётся из зала, иначе 1
func (s *LessonService) applyDefaults(tmpl model.LessonTemplate) model.LessonTemplate {
	if tmpl.Type.Online() {
		tmpl.Room = ""
	}

	if tmpl.MaxParticipants <= 0 {
		tmpl.MaxParticipants = 1
		if tmpl.Room != "" {
			if room, ok := s.catalog.RoomByName(tmpl.Room); ok && room.Capacity > 0 {
				tmpl.MaxParticipants = room.Capacity
			}
		}
	}

	if tmpl.StudentPayments == nil {
		tmpl.StudentPayments = make(map[string]bool)
	}
	return tmpl
}

func copyPayments(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
