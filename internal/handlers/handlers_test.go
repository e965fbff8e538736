package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/services"
	"schoolPortal/internal/storage"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	portal := services.NewPortal(storage.NewMemoryStore(), nil, logging.NewNop())
	require.NoError(t, portal.Initialize())
	return New(portal, nil, logging.NewNop())
}

func newTestRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	students := h.Students()
	r.HandleFunc("/students", students.List).Methods(http.MethodGet)
	r.HandleFunc("/students/{id:[0-9]+}", students.Get).Methods(http.MethodGet)
	r.HandleFunc("/students/{id:[0-9]+}", students.Update).Methods(http.MethodPatch)
	r.HandleFunc("/students/{id:[0-9]+}", students.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/courses", h.ListCourses).Methods(http.MethodGet)
	r.HandleFunc("/courses", h.CreateCourse).Methods(http.MethodPost)
	r.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	r.HandleFunc("/me", h.HandleMe).Methods(http.MethodGet)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestListStudentsQueries(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	var all []models.Student
	decodeData(t, serve(r, http.MethodGet, "/students", ""), &all)
	assert.Len(t, all, 4)

	var found []models.Student
	decodeData(t, serve(r, http.MethodGet, "/students?q=MARIA", ""), &found)
	require.Len(t, found, 1)
	assert.Equal(t, "Maria Santos", found[0].Name)

	var inactive []models.Student
	decodeData(t, serve(r, http.MethodGet, "/students?field=status&value=inativo", ""), &inactive)
	require.Len(t, inactive, 1)
	assert.Equal(t, "Pedro Costa", inactive[0].Name)
}

func TestGetAndDeleteStudent(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/students/2", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete, "/students/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/students/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/students/2", "").Code)
}

func TestUpdateStudentValidation(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	w := serve(r, http.MethodPatch, "/students/1", `{"status":"graduado"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")

	w = serve(r, http.MethodPatch, "/students/1", `{"matricula":"AL9"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPatch, "/students/1", `{"status":"trancado"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var s models.Student
	decodeData(t, serve(r, http.MethodGet, "/students/1", ""), &s)
	assert.Equal(t, models.StatusLocked, s.Status)
	assert.Equal(t, "João Silva", s.Name)
}

func TestCreateCourseConflict(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	body := `{"nome":"Análise e Desenvolvimento de Sistemas","duracao":5,"periodo":"noturno","coordenador":"X","vagas":10}`
	w := serve(r, http.MethodPost, "/courses", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodPost, "/courses", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateCourseRejectsUnaddressableID(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)
	r.HandleFunc("/courses/{id}", h.GetCourse).Methods(http.MethodGet)

	w := serve(r, http.MethodPost, "/courses", `{"id":"a/b","nome":"Redes","vagas":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var courses []models.Course
	decodeData(t, serve(r, http.MethodGet, "/courses", ""), &courses)
	assert.Len(t, courses, 4)

	w = serve(r, http.MethodPost, "/courses", `{"id":"redes","nome":"Redes","vagas":10}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/courses/redes", "").Code)
}

func TestListCoursesByName(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	var courses []models.Course
	decodeData(t, serve(r, http.MethodGet, "/courses?nome=Sistemas+de+Informa%C3%A7%C3%A3o", ""), &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, "sistemas-informacao", courses[0].ID)

	decodeData(t, serve(r, http.MethodGet, "/courses?nome=Medicina", ""), &courses)
	assert.Empty(t, courses)
}

func TestListUsersHidesPasswords(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))

	var users []models.User
	decodeData(t, serve(r, http.MethodGet, "/users", ""), &users)
	require.Len(t, users, 3)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
	assert.NotContains(t, serve(r, http.MethodGet, "/users", "").Body.String(), "admin123")
}

func TestHandleMeWithoutSessionManager(t *testing.T) {
	r := newTestRouter(newTestHandlers(t))
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodGet, "/me", "").Code)
}
