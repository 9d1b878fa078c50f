package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParseNumericID extracts a numeric path value from the request. Returns the value and a boolean indicating success.
func ParseNumericID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (int64, bool) {
	pathValue := r.PathValue(key)
	id, err := strconv.ParseInt(pathValue, 10, 64)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", key, pathValue))
		return 0, false
	}
	return id, true
}

// GetSessionID retrieves the session ID from the request context. Returns the ID and a boolean indicating success.
func GetSessionID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	sessionID, ok := r.Context().Value(sessionIDKey{}).(string)
	if !ok || sessionID == "" {
		RespondError(w, logger, http.StatusUnauthorized, "Unauthorized: Missing or invalid session ID")
		return "", false
	}
	return sessionID, true
}
