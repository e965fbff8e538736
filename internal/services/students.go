package services

import (
	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/records"
	"schoolPortal/internal/storage"
)

const (
	StudentsKey            = "students"
	DefaultStudentPassword = "aluno123"
)

// StudentRegistry manages students and their "aluno" accounts.
type StudentRegistry struct {
	*registry[models.Student, models.StudentPatch]
	now Clock
}

func NewStudentRegistry(kv storage.KV, users *UserDirectory, now Clock, log *logging.Logger) *StudentRegistry {
	return &StudentRegistry{
		registry: &registry[models.Student, models.StudentPatch]{
			records: records.NewSequence(kv, StudentsKey,
				func(s models.Student) int { return s.ID },
				func(s *models.Student, id int) { s.ID = id }),
			users: users,
			kind:  studentKind,
			log:   log,
		},
		now: now,
	}
}

var studentKind = personKind[models.Student]{
	entity:          "student",
	role:            models.RoleStudent,
	defaultPassword: DefaultStudentPassword,
	statuses:        []string{models.StatusActive, models.StatusInactive, models.StatusLocked},
	identity: func(s models.Student) (string, string) {
		return s.Name, s.Email
	},
	searchable: func(s models.Student) []string {
		return []string{s.Name, s.Email, s.Enrollment, s.CPF}
	},
	field: func(s models.Student, f models.FilterField) (string, bool) {
		switch f {
		case models.FilterCourse:
			return s.Course, true
		case models.FilterStatus:
			return s.Status, true
		}
		return "", false
	},
	group:  func(s models.Student) string { return s.Course },
	status: func(s models.Student) string { return s.Status },
}

// Initialize seeds the demo students when no collection exists.
func (r *StudentRegistry) Initialize() error {
	wrote, err := r.records.Initialize(DefaultStudents(r.now()))
	if wrote {
		r.log.WithField("key", StudentsKey).Info("Seeded default students")
	}
	return err
}

// Add registers a student and creates the linked account. See
// registry.add for the partial-failure contract.
func (r *StudentRegistry) Add(in models.NewStudent) (int, error) {
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	return r.add(models.Student{
		Name:       in.Name,
		Email:      in.Email,
		BirthDate:  in.BirthDate,
		Course:     in.Course,
		Enrollment: in.Enrollment,
		Phone:      in.Phone,
		Status:     status,
		Address:    in.Address,
		CPF:        in.CPF,
		CreatedAt:  r.now(),
	}, in.Password)
}
