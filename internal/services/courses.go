package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/records"
	"schoolPortal/internal/storage"
)

const CoursesKey = "courses"

// StudentLister is the read side of the student registry that course
// statistics depend on.
type StudentLister interface {
	All() ([]models.Student, error)
}

// CourseCatalog manages courses and their seat counts. Seat counts and
// enrolment counts are tracked independently: AdjustAvailableSeats never
// looks at students and adding a student never touches seats.
type CourseCatalog struct {
	courses  *records.Collection[string, models.Course]
	students StudentLister
	now      Clock
	log      *logging.Logger
}

func NewCourseCatalog(kv storage.KV, students StudentLister, now Clock, log *logging.Logger) *CourseCatalog {
	return &CourseCatalog{
		courses:  records.NewCollection(kv, CoursesKey, func(c models.Course) string { return c.ID }),
		students: students,
		now:      now,
		log:      log,
	}
}

func (c *CourseCatalog) Initialize() error {
	wrote, err := c.courses.Initialize(DefaultCourses())
	if wrote {
		c.log.WithField("key", CoursesKey).Info("Seeded default courses")
	}
	return err
}

func (c *CourseCatalog) All() ([]models.Course, error) {
	return c.courses.All()
}

func (c *CourseCatalog) Get(id string) (models.Course, bool, error) {
	return c.courses.Get(id)
}

// FindByName returns the first course whose name matches exactly.
func (c *CourseCatalog) FindByName(name string) (models.Course, bool, error) {
	return c.courses.Find(func(course models.Course) bool { return course.Name == name })
}

// Add stores a new course and returns its slug. A supplied id must already
// be a slug so that it can be addressed in a URL path.
func (c *CourseCatalog) Add(in models.NewCourse) (string, error) {
	id := in.ID
	if id != "" && Slugify(id) != id {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if id == "" {
		id = Slugify(in.Name)
	}
	if id == "" {
		return "", ErrEmptyID
	}

	_, exists, err := c.courses.Get(id)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}

	course := models.Course{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Duration:       in.Duration,
		Period:         in.Period,
		Coordinator:    in.Coordinator,
		Status:         in.Status,
		Seats:          in.Seats,
		AvailableSeats: in.Seats,
		CreatedOn:      in.CreatedOn,
	}
	if in.AvailableSeats != nil {
		course.AvailableSeats = *in.AvailableSeats
	}
	if course.Status == "" {
		course.Status = models.StatusActive
	}
	if course.CreatedOn == "" {
		course.CreatedOn = c.now().Format(time.DateOnly)
	}
	course.ClampSeats()

	if err := c.courses.Append(course); err != nil {
		return "", err
	}
	return id, nil
}

func (c *CourseCatalog) Update(id string, patch models.CoursePatch) (bool, error) {
	return c.courses.Update(id, patch.Apply)
}

func (c *CourseCatalog) Delete(id string) (bool, error) {
	return c.courses.Delete(id)
}

// AdjustAvailableSeats adds delta to the free seats and clamps the result
// into [0, vagas]. It reports false only for an unknown course.
func (c *CourseCatalog) AdjustAvailableSeats(id string, delta int) (bool, error) {
	return c.courses.Update(id, func(course *models.Course) {
		course.AvailableSeats += delta
		course.ClampSeats()
	})
}

// CourseStats aggregates seats and enrolments.
type CourseStats struct {
	TotalCourses      int                `json:"totalCursos"`
	TotalSeats        int                `json:"totalVagas"`
	OccupiedSeats     int                `json:"vagasOcupadas"`
	AvailableSeats    int                `json:"vagasDisponiveis"`
	StudentsPerCourse map[string]int     `json:"alunosPorCurso"`
	OccupancyRate     map[string]float64 `json:"taxaOcupacao"`
}

// Stats computes seat totals from the courses and occupancy from student
// enrolments. A course with no seats has an occupancy of 0.
func (c *CourseCatalog) Stats() (CourseStats, error) {
	courses, err := c.courses.All()
	if err != nil {
		return CourseStats{}, err
	}
	students, err := c.students.All()
	if err != nil {
		return CourseStats{}, err
	}

	stats := CourseStats{
		TotalCourses:      len(courses),
		StudentsPerCourse: make(map[string]int),
		OccupancyRate:     make(map[string]float64, len(courses)),
	}
	for _, course := range courses {
		stats.TotalSeats += course.Seats
		stats.OccupiedSeats += course.Seats - course.AvailableSeats
		stats.AvailableSeats += course.AvailableSeats
	}
	for _, s := range students {
		if s.Course != "" {
			stats.StudentsPerCourse[s.Course]++
		}
	}
	for _, course := range courses {
		stats.OccupancyRate[course.ID] = percent(stats.StudentsPerCourse[course.ID], course.Seats)
	}
	return stats, nil
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, folds accents and joins words with hyphens:
// "Ciência da Computação" becomes "ciencia-da-computacao".
func Slugify(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(folded), "-"), "-")
}
