package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"schoolPortal/internal/utils"
)

type sheetExportRequest struct {
	SheetURL string `json:"sheet_url" validate:"required,url"`
}

// ReportRows returns the tabular report for kind: students, teachers or
// courses.
func (h *Handlers) ReportRows(kind string) ([][]string, bool, error) {
	switch kind {
	case "students":
		rows, err := h.portal.Students.ReportRows()
		return rows, true, err
	case "teachers":
		rows, err := h.portal.Teachers.ReportRows()
		return rows, true, err
	case "courses":
		rows, err := h.portal.Courses.ReportRows()
		return rows, true, err
	default:
		return nil, false, nil
	}
}

// ExportToSheet appends a report to a Google Sheet. It is served outside the
// request-wide lock: storage is read under the store lock and the remote
// call runs after it is released.
func (h *Handlers) ExportToSheet(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Google Sheets export is not configured")
		return
	}

	var req sheetExportRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	kind := mux.Vars(r)["kind"]
	h.storeLock.Lock()
	rows, known, err := h.ReportRows(kind)
	h.storeLock.Unlock()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !known {
		utils.NotFoundError(w, "Report "+kind)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	written, err := h.exporter.Export(ctx, req.SheetURL, rows)
	if err != nil {
		h.log.WithFields(map[string]interface{}{
			"kind":       kind,
			"request_id": utils.GetRequestID(r),
		}).WithError(err).Error("Sheets export failed")
		utils.RespondWithError(w, http.StatusBadGateway, "Could not write to the spreadsheet")
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, map[string]int{"rows": written}, "Report exported")
}
