package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/music_school_scheduler/internal/model"
	"github.com/Freeeeeet/music_school_scheduler/internal/repository"
)

func TestInstrumentsFromTeachers(t *testing.T) {
	teachers := []model.Teacher{
		{Name: "Anna", Instruments: []string{"Fortepian", "Śpiew"}, Available: false},
		{Name: "Piotr", Instruments: []string{"Gitara", "Fortepian"}, Available: true},
	}

	got := repository.InstrumentsFromTeachers(teachers)
	require.Len(t, got, 3)

	require.Equal(t, "Fortepian", got[0].Name)
	require.Equal(t, "fortepian", got[0].ID)
	require.Equal(t, "klawiszowe", got[0].Type)
	require.True(t, got[0].Available)

	require.Equal(t, "Gitara", got[1].Name)
	require.Equal(t, "Śpiew", got[2].Name)
	require.False(t, got[2].Available)
	require.Equal(t, "wokal", got[2].Type)
}

func TestCatalogRepositoryLookups(t *testing.T) {
	repo := repository.NewCatalogRepository()
	repo.Replace(
		[]model.Room{{ID: "r1", Name: "Sala 1", Capacity: 8}},
		[]model.Teacher{{ID: "t1", Name: "Anna", Instruments: []string{"Skrzypce"}, Available: true}},
		[]model.Student{{ID: "s1", FirstName: "Kasia", LastName: "Nowak"}},
		nil,
	)

	room, ok := repo.RoomByName("Sala 1")
	require.True(t, ok)
	require.Equal(t, 8, room.Capacity)

	_, ok = repo.RoomByName("Sala 9")
	require.False(t, ok)

	teacher, ok := repo.TeacherByName("Anna")
	require.True(t, ok)
	require.Equal(t, "t1", teacher.ID)

	student, ok := repo.StudentByID("s1")
	require.True(t, ok)
	require.Equal(t, "Kasia Nowak", student.FullName())

	require.Len(t, repo.Instruments(), 1)
	require.Equal(t, "smyczkowe", repo.Instruments()[0].Type)
}
