// Package handlers exposes the portal services as a JSON API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"schoolPortal/internal/logging"
	"schoolPortal/internal/models"
	"schoolPortal/internal/services"
	"schoolPortal/internal/utils"
)

const maxBodyBytes = 1 << 20

// ReportExporter pushes report rows to an external spreadsheet and returns
// how many rows were written.
type ReportExporter interface {
	Export(ctx context.Context, sheetURL string, rows [][]string) (int, error)
}

// Handlers holds the dependencies shared by every endpoint.
type Handlers struct {
	portal   *services.Portal
	exporter ReportExporter
	validate *validator.Validate
	log      *logging.Logger

	// storeLock guards storage for handlers that run outside the
	// request-wide lock.
	storeLock sync.Locker
}

// New builds the handlers. exporter may be nil, which disables Sheets
// export.
func New(portal *services.Portal, exporter ReportExporter, log *logging.Logger) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &Handlers{
		portal:   portal,
		exporter: exporter,
		validate:  validate,
		log:       log,
		storeLock: noLock{},
	}
}

// WithStoreLock makes handlers served without the request-wide lock take l
// while they touch storage.
func (h *Handlers) WithStoreLock(l sync.Locker) *Handlers {
	h.storeLock = l
	return h
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// decodeBody reads a JSON body into dst and validates it.
func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		utils.BadRequestError(w, "Invalid JSON body: "+err.Error())
		return false
	}
	return h.validateStruct(w, dst)
}

// decodePatch reads a patch document, rejecting fields P does not have.
func decodePatch[P any](h *Handlers, w http.ResponseWriter, r *http.Request) (P, bool) {
	var zero P
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		utils.BadRequestError(w, "Could not read request body")
		return zero, false
	}
	patch, err := models.DecodePatch[P](body)
	if err != nil {
		utils.BadRequestError(w, err.Error())
		return zero, false
	}
	if !h.validateStruct(w, &patch) {
		return zero, false
	}
	return patch, true
}

func (h *Handlers) validateStruct(w http.ResponseWriter, v interface{}) bool {
	err := h.validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		utils.ValidationError(w, strings.Join(msgs, "; "))
		return false
	}
	utils.ValidationError(w, err.Error())
	return false
}

func intVar(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		utils.BadRequestError(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// fail maps service errors to responses.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownField):
		utils.BadRequestError(w, err.Error())
	case errors.Is(err, services.ErrDuplicateID):
		utils.ConflictError(w, err.Error())
	case errors.Is(err, services.ErrEmptyID):
		utils.ValidationError(w, err.Error())
	case errors.Is(err, services.ErrInvalidID):
		utils.UnprocessableError(w, err.Error())
	default:
		h.log.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": utils.GetRequestID(r),
		}).WithError(err).Error("Request failed")
		utils.StorageError(w)
	}
}

func (h *Handlers) sessionManager(w http.ResponseWriter, r *http.Request) (*services.SessionManager, bool) {
	m, ok := utils.GetSessionManager(r)
	if !ok {
		h.log.WithField("path", r.URL.Path).Error("No session manager on request")
		utils.RespondWithError(w, http.StatusInternalServerError, "Session unavailable")
		return nil, false
	}
	return m, true
}
