package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// SuccessResponse wraps successful payloads.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{
		Error:   getErrorType(code),
		Message: message,
		Code:    code,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

func RespondWithSuccess(w http.ResponseWriter, code int, data interface{}, message string) {
	RespondWithJSON(w, code, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondWithFile sends body as a download.
func RespondWithFile(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func AuthenticationError(w http.ResponseWriter) {
	RespondWithError(w, http.StatusUnauthorized, "Authentication required")
}

func AuthorizationError(w http.ResponseWriter) {
	RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
}

func BadRequestError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusBadRequest, message)
}

func NotFoundError(w http.ResponseWriter, resource string) {
	RespondWithError(w, http.StatusNotFound, resource+" not found")
}

func ConflictError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusConflict, message)
}

func ValidationError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusBadRequest, "Validation failed: "+message)
}

func UnprocessableError(w http.ResponseWriter, message string) {
	RespondWithError(w, http.StatusUnprocessableEntity, message)
}

func StorageError(w http.ResponseWriter) {
	RespondWithError(w, http.StatusInternalServerError, "Storage operation failed")
}

func getErrorType(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusConflict:
		return "Conflict"
	case http.StatusUnprocessableEntity:
		return "Unprocessable Entity"
	case http.StatusTooManyRequests:
		return "Rate Limited"
	case http.StatusInternalServerError:
		return "Internal Server Error"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Error"
	}
}
