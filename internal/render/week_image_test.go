package render

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
)

func TestWeekImage(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.January, Day: 17}
	lesson := model.Lesson{
		ID: "l1",
		LessonTemplate: model.LessonTemplate{
			Type:            model.LessonTypeGroup,
			Date:            day.In(time.UTC),
			StartTime:       model.MustParseClock("7:30"),
			Duration:        90,
			Teacher:         "Zofia Nowak",
			Instrument:      "Gitara",
			Students:        []string{"s1", "s2"},
			StudentPayments: map[string]bool{"s1": true},
		},
	}

	data, err := WeekImage(day, map[model.Date][]model.Lesson{day: {lesson}}, WeekOptions{
		FirstWeekday: time.Monday,
		Today:        day,
		Now:          time.Date(2024, 1, 17, 10, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, imageWidth, img.Bounds().Dx())
	require.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestLessonColor(t *testing.T) {
	l := model.Lesson{LessonTemplate: model.LessonTemplate{
		Students:        []string{"a", "b"},
		StudentPayments: map[string]bool{"a": true},
	}}
	require.Equal(t, lessonPartialColor, lessonColor(paymentState(l)))

	l.StudentPayments["b"] = true
	require.Equal(t, lessonPaidColor, lessonColor(paymentState(l)))

	require.Equal(t, lessonEmptyColor, lessonColor(paymentState(model.Lesson{})))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "krótki", truncate("krótki", 10))
	require.Equal(t, "Zajęcia…", truncate("Zajęcia grupowe", 8))
}
