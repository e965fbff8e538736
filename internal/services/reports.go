package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"schoolPortal/internal/models"
)

// ReportFormat selects the encoding of a registry report.
type ReportFormat string

const (
	FormatCSV  ReportFormat = "csv"
	FormatJSON ReportFormat = "json"
)

// ParseReportFormat maps anything other than "csv" to JSON.
func ParseReportFormat(s string) ReportFormat {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatCSV)) {
		return FormatCSV
	}
	return FormatJSON
}

var courseLabels = map[string]string{
	"engenharia-software": "Engenharia de Software",
	"ciencia-computacao":  "Ciência da Computação",
	"ads":                 "Análise e Desenvolvimento de Sistemas",
	"sistemas-informacao": "Sistemas de Informação",
}

var statusLabels = map[string]string{
	models.StatusActive:   "Ativo",
	models.StatusInactive: "Inativo",
	models.StatusLocked:   "Trancado",
	models.StatusOnLeave:  "Afastado",
}

var periodLabels = map[string]string{
	models.PeriodMorning:   "Matutino",
	models.PeriodAfternoon: "Vespertino",
	models.PeriodEvening:   "Noturno",
	models.PeriodFullTime:  "Integral",
}

var degreeLabels = map[string]string{
	models.DegreeUndergraduate:  "Graduação",
	models.DegreeSpecialization: "Especialização",
	models.DegreeMasters:        "Mestrado",
	models.DegreeDoctorate:      "Doutorado",
}

func labelOr(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return key
}

// CourseLabel returns the display name of a course slug, or the slug.
func CourseLabel(id string) string { return labelOr(courseLabels, id) }

func StatusLabel(status string) string { return labelOr(statusLabels, status) }

func PeriodLabel(period string) string { return labelOr(periodLabels, period) }

func DegreeLabel(degree string) string { return labelOr(degreeLabels, degree) }

// FormatDate renders an ISO date or timestamp as dd/mm/yyyy. Anything it
// cannot parse is returned unchanged.
func FormatDate(s string) string {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

var studentReportHeader = []string{"Nome", "Matrícula", "Email", "Curso", "Status", "Data de Nascimento", "Data de Cadastro"}

var teacherReportHeader = []string{"Nome", "Registro", "Email", "Especialidade", "Formação", "Status", "Data de Admissão", "Data de Cadastro"}

var courseReportHeader = []string{"Curso", "Período", "Coordenador", "Vagas", "Vagas Disponíveis", "Alunos", "Taxa de Ocupação"}

// ReportRows returns a header row followed by one row per student.
func (r *StudentRegistry) ReportRows() ([][]string, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	rows := [][]string{studentReportHeader}
	for _, s := range all {
		rows = append(rows, []string{
			s.Name,
			s.Enrollment,
			s.Email,
			CourseLabel(s.Course),
			StatusLabel(s.Status),
			FormatDate(s.BirthDate),
			formatTime(s.CreatedAt),
		})
	}
	return rows, nil
}

// Report renders every student as CSV or as an indented JSON array.
func (r *StudentRegistry) Report(format ReportFormat) ([]byte, error) {
	if format == FormatCSV {
		rows, err := r.ReportRows()
		if err != nil {
			return nil, err
		}
		return EncodeCSV(rows), nil
	}
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(all, "", "  ")
}

func (r *TeacherRegistry) ReportRows() ([][]string, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	rows := [][]string{teacherReportHeader}
	for _, t := range all {
		rows = append(rows, []string{
			t.Name,
			t.Registry,
			t.Email,
			t.Specialty,
			DegreeLabel(t.Degree),
			StatusLabel(t.Status),
			FormatDate(t.HireDate),
			formatTime(t.CreatedAt),
		})
	}
	return rows, nil
}

func (r *TeacherRegistry) Report(format ReportFormat) ([]byte, error) {
	if format == FormatCSV {
		rows, err := r.ReportRows()
		if err != nil {
			return nil, err
		}
		return EncodeCSV(rows), nil
	}
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(all, "", "  ")
}

// CourseReport is the JSON summary of the catalog.
type CourseReport struct {
	Timestamp time.Time       `json:"timestamp"`
	Courses   []models.Course `json:"cursos"`
	Stats     CourseStats     `json:"estatisticas"`
	Summary   CourseSummary   `json:"resumo"`
}

type CourseSummary struct {
	TotalCourses     int     `json:"totalCursos"`
	TotalSeats       int     `json:"totalVagas"`
	OccupiedSeats    int     `json:"vagasOcupadas"`
	OverallOccupancy float64 `json:"taxaOcupacaoGeral"`
}

// Report builds the catalog summary. Overall occupancy is occupied seats
// over total seats, or 0 when there are no seats.
func (c *CourseCatalog) Report() (CourseReport, error) {
	courses, err := c.All()
	if err != nil {
		return CourseReport{}, err
	}
	stats, err := c.Stats()
	if err != nil {
		return CourseReport{}, err
	}
	return CourseReport{
		Timestamp: c.now().UTC(),
		Courses:   courses,
		Stats:     stats,
		Summary: CourseSummary{
			TotalCourses:     stats.TotalCourses,
			TotalSeats:       stats.TotalSeats,
			OccupiedSeats:    stats.OccupiedSeats,
			OverallOccupancy: percent(stats.OccupiedSeats, stats.TotalSeats),
		},
	}, nil
}

func (c *CourseCatalog) ReportRows() ([][]string, error) {
	report, err := c.Report()
	if err != nil {
		return nil, err
	}
	rows := [][]string{courseReportHeader}
	for _, course := range report.Courses {
		rows = append(rows, []string{
			course.Name,
			PeriodLabel(course.Period),
			course.Coordinator,
			strconv.Itoa(course.Seats),
			strconv.Itoa(course.AvailableSeats),
			strconv.Itoa(report.Stats.StudentsPerCourse[course.ID]),
			fmt.Sprintf("%.1f%%", report.Stats.OccupancyRate[course.ID]),
		})
	}
	return rows, nil
}

// EncodeCSV writes the header row as is and quotes every data field,
// doubling embedded quotes.
func EncodeCSV(rows [][]string) []byte {
	var b strings.Builder
	for i, row := range rows {
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			if i == 0 {
				b.WriteString(field)
				continue
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
