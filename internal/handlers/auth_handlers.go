package handlers

import (
	"net/http"

	"schoolPortal/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// HandleLogin starts a session for matching credentials.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	m, ok := h.sessionManager(w, r)
	if !ok {
		return
	}

	loggedIn, err := m.Login(req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !loggedIn {
		h.log.WithField("ip", r.RemoteAddr).Warn("Failed login attempt")
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	user, found, err := m.CurrentUser()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !found {
		utils.AuthenticationError(w)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, user.WithoutPassword(), "Logged in")
}

// HandleLogout ends the session. It succeeds when nobody is logged in.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	m, ok := h.sessionManager(w, r)
	if !ok {
		return
	}
	if err := m.Logout(); err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, "Logged out")
}

// HandleMe returns the logged in user and the session window.
func (h *Handlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	m, ok := h.sessionManager(w, r)
	if !ok {
		return
	}
	user, found, err := m.CurrentUser()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !found {
		utils.AuthenticationError(w)
		return
	}
	session, _, err := m.Session()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, map[string]interface{}{
		"user":    user.WithoutPassword(),
		"session": session,
	}, "")
}
