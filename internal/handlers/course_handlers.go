package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"schoolPortal/internal/models"
	"schoolPortal/internal/utils"
)

type seatsRequest struct {
	Delta int `json:"delta"`
}

// ListCourses supports ?nome= for an exact name lookup.
func (h *Handlers) ListCourses(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("nome"); name != "" {
		course, found, err := h.portal.Courses.FindByName(name)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		if !found {
			utils.RespondWithSuccess(w, http.StatusOK, []models.Course{}, "")
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, []models.Course{course}, "")
		return
	}

	courses, err := h.portal.Courses.All()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, courses, "")
}

func (h *Handlers) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, found, err := h.portal.Courses.Get(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !found {
		utils.NotFoundError(w, "Course")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, course, "")
}

func (h *Handlers) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var in models.NewCourse
	if !h.decodeBody(w, r, &in) {
		return
	}
	id, err := h.portal.Courses.Add(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, map[string]string{"id": id}, "Course created")
}

func (h *Handlers) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	patch, ok := decodePatch[models.CoursePatch](h, w, r)
	if !ok {
		return
	}
	updated, err := h.portal.Courses.Update(mux.Vars(r)["id"], patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !updated {
		utils.NotFoundError(w, "Course")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, "Course updated")
}

func (h *Handlers) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	removed, err := h.portal.Courses.Delete(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !removed {
		utils.NotFoundError(w, "Course")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, "Course removed")
}

// AdjustSeats applies a signed delta to the free seats. Out of range
// results are clamped, not rejected.
func (h *Handlers) AdjustSeats(w http.ResponseWriter, r *http.Request) {
	var req seatsRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	id := mux.Vars(r)["id"]
	ok, err := h.portal.Courses.AdjustAvailableSeats(id, req.Delta)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		utils.NotFoundError(w, "Course")
		return
	}
	course, _, err := h.portal.Courses.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, course, "")
}

func (h *Handlers) CourseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.portal.Courses.Stats()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, stats, "")
}

func (h *Handlers) CourseReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.portal.Courses.Report()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
