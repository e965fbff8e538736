package handlers

import (
	"errors"
	"net/http"

	"schoolPortal/internal/models"
	"schoolPortal/internal/services"
	"schoolPortal/internal/utils"
)

// personService is what StudentRegistry and TeacherRegistry share.
type personService[T any, N any, P any] interface {
	All() ([]T, error)
	Get(id int) (T, bool, error)
	Add(in N) (int, error)
	Update(id int, patch P) (bool, error)
	Remove(id int) (bool, error)
	Search(query string) ([]T, error)
	FilterByField(field models.FilterField, value string) ([]T, error)
	Stats() (services.PersonStats, error)
	Report(format services.ReportFormat) ([]byte, error)
}

// PersonHandlers serves one person registry.
type PersonHandlers[T any, N any, P any] struct {
	h          *Handlers
	svc        personService[T, N, P]
	resource   string
	reportName string
}

func (h *Handlers) Students() *PersonHandlers[models.Student, models.NewStudent, models.StudentPatch] {
	return &PersonHandlers[models.Student, models.NewStudent, models.StudentPatch]{
		h: h, svc: h.portal.Students, resource: "Student", reportName: "alunos",
	}
}

func (h *Handlers) Teachers() *PersonHandlers[models.Teacher, models.NewTeacher, models.TeacherPatch] {
	return &PersonHandlers[models.Teacher, models.NewTeacher, models.TeacherPatch]{
		h: h, svc: h.portal.Teachers, resource: "Teacher", reportName: "professores",
	}
}

// List supports ?q= for search and ?field=&value= for exact filtering.
func (p *PersonHandlers[T, N, P]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		items []T
		err   error
	)
	switch {
	case q.Has("q"):
		items, err = p.svc.Search(q.Get("q"))
	case q.Get("field") != "":
		items, err = p.svc.FilterByField(models.FilterField(q.Get("field")), q.Get("value"))
	default:
		items, err = p.svc.All()
	}
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, items, "")
}

func (p *PersonHandlers[T, N, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	item, found, err := p.svc.Get(id)
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	if !found {
		utils.NotFoundError(w, p.resource)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, item, "")
}

// Create registers the person and its login account. When only the account
// write fails the person is kept and the reply says so.
func (p *PersonHandlers[T, N, P]) Create(w http.ResponseWriter, r *http.Request) {
	var in N
	if !p.h.decodeBody(w, r, &in) {
		return
	}

	id, err := p.svc.Add(in)
	if errors.Is(err, services.ErrAccountNotCreated) {
		utils.RespondWithSuccess(w, http.StatusCreated, map[string]int{"id": id},
			p.resource+" created without a login account")
		return
	}
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, map[string]int{"id": id}, p.resource+" created")
}

func (p *PersonHandlers[T, N, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch[P](p.h, w, r)
	if !ok {
		return
	}

	updated, err := p.svc.Update(id, patch)
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	if !updated {
		utils.NotFoundError(w, p.resource)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, p.resource+" updated")
}

func (p *PersonHandlers[T, N, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	removed, err := p.svc.Remove(id)
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	if !removed {
		utils.NotFoundError(w, p.resource)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, p.resource+" removed")
}

func (p *PersonHandlers[T, N, P]) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := p.svc.Stats()
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, stats, "")
}

// Report downloads the registry as CSV (?format=csv) or JSON.
func (p *PersonHandlers[T, N, P]) Report(w http.ResponseWriter, r *http.Request) {
	format := services.ParseReportFormat(r.URL.Query().Get("format"))
	body, err := p.svc.Report(format)
	if err != nil {
		p.h.fail(w, r, err)
		return
	}
	if format == services.FormatCSV {
		utils.RespondWithFile(w, "text/csv; charset=utf-8", p.reportName+".csv", body)
		return
	}
	utils.RespondWithFile(w, "application/json", p.reportName+".json", body)
}
