package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"go.uber.org/zap"
)

var (
	ErrLessonNotFound = errors.New("lesson not found")
	ErrDuplicateID    = errors.New("lesson id already exists")
)

// LessonRepository хранит все занятия в памяти процесса.
// Наружу всегда отдаются копии, поэтому вызывающий код не может изменить хранилище в обход методов.
type LessonRepository struct {
	mu      sync.RWMutex
	lessons []model.Lesson
	index   map[string]int // lessonID -> позиция в lessons
	logger  *zap.Logger
}

func NewLessonRepository(logger *zap.Logger) *LessonRepository {
	return &LessonRepository{
		index:  make(map[string]int),
		logger: logger,
	}
}

// Create добавляет одно занятие
func (r *LessonRepository) Create(ctx context.Context, lesson model.Lesson) error {
	return r.CreateBatch(ctx, []model.Lesson{lesson})
}

// CreateBatch добавляет серию занятий целиком или не добавляет ничего
func (r *LessonRepository) CreateBatch(ctx context.Context, lessons []model.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		if l.ID == "" {
			return fmt.Errorf("create lessons: empty id")
		}
		if _, exists := r.index[l.ID]; exists || seen[l.ID] {
			return fmt.Errorf("create lessons: %w: %s", ErrDuplicateID, l.ID)
		}
		seen[l.ID] = true
	}

	for _, l := range lessons {
		r.index[l.ID] = len(r.lessons)
		r.lessons = append(r.lessons, l.Clone())
	}

	r.logger.Debug("Lessons stored",
		zap.Int("added", len(lessons)),
		zap.Int("total", len(r.lessons)))
	return nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id string) (model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return model.Lesson{}, fmt.Errorf("get lesson %s: %w", id, ErrLessonNotFound)
	}
	return r.lessons[pos].Clone(), nil
}

// List возвращает все занятия в порядке добавления
func (r *LessonRepository) List(ctx context.Context) ([]model.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Lesson, len(r.lessons))
	for i, l := range r.lessons {
		out[i] = l.Clone()
	}
	return out, nil
}

// Modify изменяет занятие функцией fn под блокировкой записи и возвращает новую версию.
// Если fn вернула ошибку, запись остаётся прежней. ID занятия менять нельзя.
func (r *LessonRepository) Modify(ctx context.Context, id string, fn func(l *model.Lesson) error) (model.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return model.Lesson{}, fmt.Errorf("modify lesson %s: %w", id, ErrLessonNotFound)
	}

	lesson := r.lessons[pos].Clone()
	if err := fn(&lesson); err != nil {
		return model.Lesson{}, err
	}
	lesson.ID = id
	r.lessons[pos] = lesson.Clone()

	r.logger.Debug("Lesson modified", zap.String("lesson_id", id))
	return lesson, nil
}

// Delete удаляет занятие
func (r *LessonRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return fmt.Errorf("delete lesson %s: %w", id, ErrLessonNotFound)
	}

	r.lessons = append(r.lessons[:pos], r.lessons[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.lessons); i++ {
		r.index[r.lessons[i].ID] = i
	}

	r.logger.Debug("Lesson deleted",
		zap.String("lesson_id", id),
		zap.Int("total", len(r.lessons)))
	return nil
}

// Count возвращает количество занятий
func (r *LessonRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lessons)
}
