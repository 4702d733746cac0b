package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/music_school_scheduler/internal/app"
	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
	"github.com/Freeeeeet/music_school_scheduler/internal/seed"
	"github.com/Freeeeeet/music_school_scheduler/internal/service"
)

func TestSeederLoadsDefaultDataset(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	catalog := repository.NewCatalogRepository()
	store := repository.NewLessonRepository(logger)
	lessons := service.NewLessonService(store, catalog, time.UTC, logger).
		WithClock(func() time.Time { return time.Date(2024, 1, 15, 6, 0, 0, 0, time.UTC) })

	ds, err := seed.Default()
	require.NoError(t, err)

	require.NoError(t, app.NewSeeder(catalog, lessons, logger).Run(ctx, ds))
	require.NotEmpty(t, catalog.Rooms())
	require.NotEmpty(t, catalog.Instruments())

	expected := 0
	for _, l := range ds.Lessons {
		if l.Recurrence != nil {
			expected += l.Recurrence.Count
		} else {
			expected++
		}
	}
	require.Equal(t, expected, store.Count())

	today, err := lessons.DaySchedule(ctx, model.Date{Year: 2024, Month: time.January, Day: 15}, model.FilterSet{}, "")
	require.NoError(t, err)
	require.NotEmpty(t, today)

	for _, l := range today {
		if l.Type.Online() {
			require.Empty(t, l.Room)
		}
		require.Positive(t, l.MaxParticipants)
	}
}
