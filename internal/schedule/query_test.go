package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/schedule"
)

func lesson(id string, day time.Time, start, teacher, room, instrument string, typ model.LessonType) model.Lesson {
	return model.Lesson{
		ID: id,
		LessonTemplate: model.LessonTemplate{
			Type:       typ,
			Date:       day,
			StartTime:  model.MustParseClock(start),
			Duration:   45,
			Teacher:    teacher,
			Room:       room,
			Instrument: instrument,
		},
	}
}

func ids(lessons []model.Lesson) []string {
	out := make([]string, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, l.ID)
	}
	return out
}

func fixture() []model.Lesson {
	mon := date(2024, 1, 15)
	return []model.Lesson{
		lesson("late", mon, "15:30", "Anna", "Sala 1", "Fortepian", model.LessonTypeIndividualStationary),
		lesson("early", mon, "09:00", "Piotr", "Sala 2", "Gitara", model.LessonTypeGroup),
		lesson("online", mon, "12:00", "Anna", "", "Fortepian", model.LessonTypeIndividualOnline),
		lesson("short-hour", mon, "9:30", "Piotr", "Sala 1", "Gitara", model.LessonTypeChildren),
		lesson("tuesday", date(2024, 1, 16), "08:00", "Anna", "Sala 1", "Fortepian", model.LessonTypeGroup),
	}
}

func TestQueryOrdersByStartTime(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.January, Day: 15}
	got := schedule.Query(fixture(), day, model.FilterSet{})
	require.Equal(t, []string{"early", "short-hour", "online", "late"}, ids(got))
}

func TestQueryFilters(t *testing.T) {
	day := model.Date{Year: 2024, Month: time.January, Day: 15}

	cases := []struct {
		name    string
		filters model.FilterSet
		want    []string
	}{
		{"teacher", model.FilterSet{Teachers: []string{"Anna"}}, []string{"online", "late"}},
		{"teachers or", model.FilterSet{Teachers: []string{"Anna", "Piotr"}}, []string{"early", "short-hour", "online", "late"}},
		{"room keeps roomless", model.FilterSet{Rooms: []string{"Sala 2"}}, []string{"early", "online"}},
		{"instrument and type", model.FilterSet{Instruments: []string{"Gitara"}, LessonTypes: []string{"children"}}, []string{"short-hour"}},
		{"no match", model.FilterSet{Teachers: []string{"Ewa"}}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(schedule.Query(fixture(), day, tc.filters)))
		})
	}
}

func TestQueryIsPureAndIdempotent(t *testing.T) {
	lessons := fixture()
	before := ids(lessons)
	day := model.Date{Year: 2024, Month: time.January, Day: 15}
	filters := model.FilterSet{Instruments: []string{"Fortepian"}}

	first := schedule.Query(lessons, day, filters)
	second := schedule.Query(lessons, day, filters)
	require.Equal(t, first, second)
	require.Equal(t, before, ids(lessons))
}

func TestQueryUsesLessonLocationDay(t *testing.T) {
	// 23:30 UTC 14-го в Варшаве уже 15-е
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	stored := time.Date(2024, 1, 14, 23, 30, 0, 0, time.UTC).In(warsaw)

	lessons := []model.Lesson{lesson("tz", stored, "10:00", "Anna", "", "Fortepian", model.LessonTypeGroup)}
	got := schedule.Query(lessons, model.Date{Year: 2024, Month: time.January, Day: 15}, model.FilterSet{})
	require.Equal(t, []string{"tz"}, ids(got))
}

func TestInRange(t *testing.T) {
	d15 := model.Date{Year: 2024, Month: time.January, Day: 15}
	d16 := d15.AddDays(1)
	d17 := d15.AddDays(2)

	got := schedule.InRange(fixture(), []model.Date{d15, d16, d17}, model.FilterSet{Teachers: []string{"Anna"}})
	require.Equal(t, []string{"online", "late"}, ids(got[d15]))
	require.Equal(t, []string{"tuesday"}, ids(got[d16]))
	require.Empty(t, got[d17])
}

func TestSearch(t *testing.T) {
	lessons := fixture()
	lessons[0].Title = "Przygotowanie do koncertu"
	lessons[1].Students = []string{"Kasia Nowak"}

	require.Equal(t, []string{"late"}, ids(schedule.Search(lessons, "KONCERT")))
	require.Equal(t, []string{"early"}, ids(schedule.Search(lessons, "nowak")))
	require.Equal(t, []string{"early", "short-hour"}, ids(schedule.Search(lessons, "gitar")))
	require.Len(t, schedule.Search(lessons, "  "), len(lessons))
}

func TestPaymentStatus(t *testing.T) {
	l := lesson("p", date(2024, 1, 15), "10:00", "Anna", "", "Fortepian", model.LessonTypeGroup)

	require.Equal(t, model.PaymentStatus{}, schedule.PaymentStatusOf(l))
	require.Equal(t, model.PaymentNoStudents, schedule.PaymentStatusOf(l).State())

	l.Students = []string{"a", "b", "c"}
	l.StudentPayments = map[string]bool{"a": true, "c": false, "gone": true}
	status := schedule.PaymentStatusOf(l)
	require.Equal(t, model.PaymentStatus{Paid: 1, Total: 3}, status)
	require.Equal(t, model.PaymentPartial, status.State())

	l.StudentPayments = nil
	require.Equal(t, model.PaymentUnpaid, schedule.PaymentStatusOf(l).State())

	l.StudentPayments = map[string]bool{"a": true, "b": true, "c": true}
	require.Equal(t, model.PaymentFullyPaid, schedule.PaymentStatusOf(l).State())
}
