package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

// DigestSender рассылает расписание на день подписанным чатам
type DigestSender interface {
	SendDailyDigest(ctx context.Context, day model.Date) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sender   DigestSender
	at       model.ClockTime
	location *time.Location
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sender DigestSender, at model.ClockTime, location *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sender:   sender,
		at:       at,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
		logger:   logger,
	}
}

// DigestSpec cron-выражение ежедневной рассылки в часовом поясе loc
func DigestSpec(at model.ClockTime, loc *time.Location) string {
	return fmt.Sprintf("CRON_TZ=%s %d %d * * *", loc.String(), at.Minutes()%60, at.Hour())
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) error {
	spec := DigestSpec(s.at, s.location)
	s.logger.Info("Starting background scheduler", zap.String("digest_spec", spec))

	_, err := s.cron.AddFunc(spec, func() {
		s.sendDigest(ctx, model.DateOf(time.Now().In(s.location)))
	})
	if err != nil {
		return fmt.Errorf("schedule digest: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop останавливает фоновые задачи и ждёт завершения текущей рассылки
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	<-s.cron.Stop().Done()
	s.logger.Info("Digest task stopped")
}

func (s *Scheduler) sendDigest(ctx context.Context, day model.Date) {
	if ctx.Err() != nil {
		return
	}

	s.logger.Info("Sending daily digest", zap.String("day", day.String()))

	if err := s.sender.SendDailyDigest(ctx, day); err != nil {
		s.logger.Error("Failed to send daily digest", zap.Error(err))
		return
	}

	s.logger.Info("Daily digest sent")
}

// NextRun ближайший момент после now, когда на часах в loc будет at
func NextRun(now time.Time, at model.ClockTime, loc *time.Location) (time.Time, error) {
	schedule, err := cron.ParseStandard(DigestSpec(at, loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse digest spec: %w", err)
	}
	return schedule.Next(now).In(loc), nil
}
