package utils

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope returned by every endpoint:
// {success, message?, data?, count?}.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK envelope with optional data
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// WriteOKWithMessage writes a 200 OK envelope with a message and data
func WriteOKWithMessage(w http.ResponseWriter, message string, data interface{}) error {
	return WriteJSON(w, http.StatusOK, APIResponse{Success: true, Message: message, Data: data})
}

// WriteOKWithCount writes a 200 OK envelope for list responses, including the
// element count the SPA uses for badges.
func WriteOKWithCount(w http.ResponseWriter, data interface{}, count int) error {
	return WriteJSON(w, http.StatusOK, APIResponse{Success: true, Data: data, Count: &count})
}

// WriteCreated writes a 201 Created envelope with optional data
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

// WriteBadRequest writes a 400 Bad Request envelope
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: message})
}

// WriteUnauthorized writes a 401 Unauthorized envelope
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Unauthorized"
	}
	return WriteJSON(w, http.StatusUnauthorized, APIResponse{Success: false, Message: message})
}

// WriteForbidden writes a 403 Forbidden envelope
func WriteForbidden(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Access forbidden"
	}
	return WriteJSON(w, http.StatusForbidden, APIResponse{Success: false, Message: message})
}

// WriteNotFound writes a 404 Not Found envelope
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: message})
}

// WriteConflict writes a 409 Conflict envelope
func WriteConflict(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusConflict, APIResponse{Success: false, Message: message})
}

// WriteInternalServerError writes a 500 Internal Server Error envelope
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: message})
}
