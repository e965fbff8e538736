package handlers

import (
	"net/http"

	"schoolPortal/internal/models"
	"schoolPortal/internal/utils"
)

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.portal.Users.All()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.WithoutPassword())
	}
	utils.RespondWithSuccess(w, http.StatusOK, out, "")
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	user, found, err := h.portal.Users.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !found {
		utils.NotFoundError(w, "User")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, user.WithoutPassword(), "")
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in models.NewUser
	if !h.decodeBody(w, r, &in) {
		return
	}
	id, err := h.portal.Users.Create(in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, map[string]int{"id": id}, "User created")
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch[models.UserPatch](h, w, r)
	if !ok {
		return
	}
	updated, err := h.portal.Users.Update(id, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !updated {
		utils.NotFoundError(w, "User")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, "User updated")
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := intVar(w, r, "id")
	if !ok {
		return
	}
	removed, err := h.portal.Users.Delete(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !removed {
		utils.NotFoundError(w, "User")
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nil, "User removed")
}
