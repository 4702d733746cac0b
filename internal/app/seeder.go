package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/seed"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

// Seeder заполняет пустое хранилище стартовыми данными школы
type Seeder struct {
	catalog *repository.CatalogRepository
	lessons *service.LessonService
	logger  *zap.Logger
}

// NewSeeder создаёт новый сидер
func NewSeeder(catalog *repository.CatalogRepository, lessons *service.LessonService, logger *zap.Logger) *Seeder {
	return &Seeder{
		catalog: catalog,
		lessons: lessons,
		logger:  logger,
	}
}

// Run загружает справочники и занятия из набора данных
func (s *Seeder) Run(ctx context.Context, ds *seed.Dataset) error {
	s.logger.Info("🔄 Loading seed dataset...",
		zap.Int("rooms", len(ds.Rooms)),
		zap.Int("teachers", len(ds.Teachers)),
		zap.Int("students", len(ds.Students)),
		zap.Int("lessons", len(ds.Lessons)))

	s.catalog.Replace(ds.Rooms, ds.Teachers, ds.Students, ds.Instruments)

	total := 0
	for i, l := range ds.Templates(s.lessons.Today(), s.lessons.Location()) {
		policy := model.Single()
		if l.Recurrence != nil {
			policy = *l.Recurrence
		}

		created, err := s.lessons.AddSeries(ctx, l.LessonTemplate, policy)
		if err != nil {
			return fmt.Errorf("seed lesson %d: %w", i, err)
		}
		total += len(created)
	}

	s.logger.Info("✅ Seed dataset loaded", zap.Int("lessons_created", total))
	return nil
}
