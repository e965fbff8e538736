package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolPortal/internal/models"
)

func TestAdjustAvailableSeatsClamps(t *testing.T) {
	f := newFixture(t)
	courses := f.portal.Courses

	// engenharia-software starts with 50 seats, 25 free.
	ok, err := courses.AdjustAvailableSeats("engenharia-software", -30)
	require.NoError(t, err)
	assert.True(t, ok)

	c, _, err := courses.Get("engenharia-software")
	require.NoError(t, err)
	assert.Equal(t, 0, c.AvailableSeats)

	ok, err = courses.AdjustAvailableSeats("engenharia-software", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	c, _, err = courses.Get("engenharia-software")
	require.NoError(t, err)
	assert.Equal(t, 50, c.AvailableSeats)

	ok, err = courses.AdjustAvailableSeats("engenharia-software", -5)
	require.NoError(t, err)
	assert.True(t, ok)
	c, _, _ = courses.Get("engenharia-software")
	assert.Equal(t, 45, c.AvailableSeats)
}

func TestAdjustAvailableSeatsUnknownCourse(t *testing.T) {
	f := newFixture(t)

	ok, err := f.portal.Courses.AdjustAvailableSeats("medicina", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeatsStayInRangeUnderAnyDeltas(t *testing.T) {
	f := newFixture(t)
	for _, delta := range []int{-7, 13, -100, 3, 1000, -1, 0, -44, 61} {
		_, err := f.portal.Courses.AdjustAvailableSeats("ads", delta)
		require.NoError(t, err)

		c, _, err := f.portal.Courses.Get("ads")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, c.AvailableSeats, 0)
		assert.LessOrEqual(t, c.AvailableSeats, c.Seats)
	}
}

func TestCourseStats(t *testing.T) {
	f := newFixture(t)

	stats, err := f.portal.Courses.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalCourses)
	assert.Equal(t, 195, stats.TotalSeats)
	assert.Equal(t, 90, stats.AvailableSeats)
	assert.Equal(t, 105, stats.OccupiedSeats)
	assert.Equal(t, 1, stats.StudentsPerCourse["ads"])
	assert.InDelta(t, 2.0, stats.OccupancyRate["engenharia-software"], 1e-9)
	assert.InDelta(t, 100.0/60, stats.OccupancyRate["ads"], 1e-9)
}

func TestCourseStatsIgnoresSeatCountsForOccupancy(t *testing.T) {
	f := newFixture(t)

	_, err := f.portal.Courses.AdjustAvailableSeats("ads", -30)
	require.NoError(t, err)

	stats, err := f.portal.Courses.Stats()
	require.NoError(t, err)
	assert.InDelta(t, 100.0/60, stats.OccupancyRate["ads"], 1e-9,
		"occupancy follows enrolments, not the seat counter")
}

func TestCourseStatsZeroSeats(t *testing.T) {
	f := newFixture(t)

	_, err := f.portal.Courses.Add(models.NewCourse{Name: "Robótica", Seats: 0})
	require.NoError(t, err)
	_, err = f.portal.Students.Add(models.NewStudent{Name: "Léo", Email: "leo@escola.com", Course: "robotica"})
	require.NoError(t, err)

	stats, err := f.portal.Courses.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StudentsPerCourse["robotica"])
	assert.Equal(t, 0.0, stats.OccupancyRate["robotica"])
}

func TestAddCourse(t *testing.T) {
	f := newFixture(t)

	free := 80
	id, err := f.portal.Courses.Add(models.NewCourse{
		Name:           "Ciência de Dados",
		Seats:          30,
		AvailableSeats: &free,
		Period:         models.PeriodEvening,
	})
	require.NoError(t, err)
	assert.Equal(t, "ciencia-de-dados", id)

	c, ok, err := f.portal.Courses.Get(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 30, c.AvailableSeats, "free seats are clamped to capacity")
	assert.Equal(t, models.StatusActive, c.Status)
	assert.Equal(t, "2024-03-04", c.CreatedOn)

	_, err = f.portal.Courses.Add(models.NewCourse{ID: "ciencia-de-dados", Name: "Outro"})
	assert.True(t, errors.Is(err, ErrDuplicateID))

	_, err = f.portal.Courses.Add(models.NewCourse{Name: "!!!"})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestAddCourseRejectsNonSlugID(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"a/b", "Redes", "redes de computadores", "-redes", "ciência"} {
		_, err := f.portal.Courses.Add(models.NewCourse{ID: id, Name: "Redes"})
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}

	all, err := f.portal.Courses.All()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	id, err := f.portal.Courses.Add(models.NewCourse{ID: "redes-2", Name: "Redes"})
	require.NoError(t, err)
	assert.Equal(t, "redes-2", id)
}

func TestFindCourseByName(t *testing.T) {
	f := newFixture(t)

	c, ok, err := f.portal.Courses.FindByName("Sistemas de Informação")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sistemas-informacao", c.ID)

	_, ok, err = f.portal.Courses.FindByName("sistemas de informação")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	f := newFixture(t)

	seats := 20
	ok, err := f.portal.Courses.Update("ads", models.CoursePatch{Seats: &seats})
	require.NoError(t, err)
	require.True(t, ok)

	c, _, _ := f.portal.Courses.Get("ads")
	assert.Equal(t, 20, c.Seats)
	assert.Equal(t, 20, c.AvailableSeats)

	ok, err = f.portal.Courses.Delete("ads")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.portal.Courses.Delete("ads")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCourseReport(t *testing.T) {
	f := newFixture(t)

	report, err := f.portal.Courses.Report()
	require.NoError(t, err)
	assert.Len(t, report.Courses, 4)
	assert.Equal(t, 195, report.Summary.TotalSeats)
	assert.InDelta(t, 105.0/195*100, report.Summary.OverallOccupancy, 1e-9)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"timestamp", "cursos", "estatisticas", "resumo"} {
		assert.Contains(t, decoded, key)
	}
}

func TestCourseReportWithNoSeats(t *testing.T) {
	f := newEmptyFixture(t)

	report, err := f.portal.Courses.Report()
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Summary.OverallOccupancy)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "analise-e-desenvolvimento-de-sistemas", Slugify("Análise e Desenvolvimento de Sistemas"))
	assert.Equal(t, "ciencia-da-computacao", Slugify("  Ciência da Computação "))
	assert.Equal(t, "", Slugify("---"))
}
