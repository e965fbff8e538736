package services

import (
	"time"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/storage"
)

// Portal wires the collections that share one storage medium.
type Portal struct {
	Users    *UserDirectory
	Students *StudentRegistry
	Teachers *TeacherRegistry
	Courses  *CourseCatalog

	now Clock
	log *logging.Logger
}

// NewPortal builds every service over kv. A nil clock means time.Now.
func NewPortal(kv storage.KV, now Clock, log *logging.Logger) *Portal {
	if now == nil {
		now = time.Now
	}
	users := NewUserDirectory(kv, now, log)
	students := NewStudentRegistry(kv, users, now, log)
	return &Portal{
		Users:    users,
		Students: students,
		Teachers: NewTeacherRegistry(kv, users, now, log),
		Courses:  NewCourseCatalog(kv, students, now, log),
		now:      now,
		log:      log,
	}
}

// Initialize seeds each collection that does not exist yet.
func (p *Portal) Initialize() error {
	for _, seed := range []func() error{
		p.Users.Initialize,
		p.Students.Initialize,
		p.Teachers.Initialize,
		p.Courses.Initialize,
	} {
		if err := seed(); err != nil {
			return err
		}
	}
	return nil
}

// Sessions returns a SessionManager keeping its session in sessionKV and
// resolving users through this portal.
func (p *Portal) Sessions(sessionKV storage.KV, timeout time.Duration) *SessionManager {
	return NewSessionManager(sessionKV, p.Users, timeout, p.now, p.log)
}
