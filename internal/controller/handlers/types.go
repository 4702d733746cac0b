package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/controller/state"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

// Handlers содержит все зависимости для обработки команд и callback'ов
type Handlers struct {
	lessons      *service.LessonService
	catalog      *service.CatalogService
	stateManager *state.Manager
	weekStart    time.Weekday
	now          func() time.Time
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	lessons *service.LessonService,
	catalog *service.CatalogService,
	stateManager *state.Manager,
	weekStart time.Weekday,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		lessons:      lessons,
		catalog:      catalog,
		stateManager: stateManager,
		weekStart:    weekStart,
		now:          time.Now,
		logger:       logger,
	}
}
