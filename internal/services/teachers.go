package services

import (
	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/records"
	"schoolPortal/internal/storage"
)

const (
	TeachersKey            = "teachers"
	DefaultTeacherPassword = "professor123"
)

// TeacherRegistry manages teachers and their "professor" accounts.
type TeacherRegistry struct {
	*registry[models.Teacher, models.TeacherPatch]
	now Clock
}

func NewTeacherRegistry(kv storage.KV, users *UserDirectory, now Clock, log *logging.Logger) *TeacherRegistry {
	return &TeacherRegistry{
		registry: &registry[models.Teacher, models.TeacherPatch]{
			records: records.NewSequence(kv, TeachersKey,
				func(t models.Teacher) int { return t.ID },
				func(t *models.Teacher, id int) { t.ID = id }),
			users: users,
			kind:  teacherKind,
			log:   log,
		},
		now: now,
	}
}

var teacherKind = personKind[models.Teacher]{
	entity:          "teacher",
	role:            models.RoleTeacher,
	defaultPassword: DefaultTeacherPassword,
	statuses:        []string{models.StatusActive, models.StatusInactive, models.StatusOnLeave},
	identity: func(t models.Teacher) (string, string) {
		return t.Name, t.Email
	},
	searchable: func(t models.Teacher) []string {
		return []string{t.Name, t.Email, t.Registry, t.Specialty}
	},
	field: func(t models.Teacher, f models.FilterField) (string, bool) {
		switch f {
		case models.FilterDegree:
			return t.Degree, true
		case models.FilterStatus:
			return t.Status, true
		}
		return "", false
	},
	group:  func(t models.Teacher) string { return t.Degree },
	status: func(t models.Teacher) string { return t.Status },
}

func (r *TeacherRegistry) Initialize() error {
	wrote, err := r.records.Initialize(DefaultTeachers(r.now()))
	if wrote {
		r.log.WithField("key", TeachersKey).Info("Seeded default teachers")
	}
	return err
}

func (r *TeacherRegistry) Add(in models.NewTeacher) (int, error) {
	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	return r.add(models.Teacher{
		Name:      in.Name,
		Email:     in.Email,
		Specialty: in.Specialty,
		Degree:    in.Degree,
		Registry:  in.Registry,
		Phone:     in.Phone,
		Status:    status,
		HireDate:  in.HireDate,
		CreatedAt: r.now(),
	}, in.Password)
}
