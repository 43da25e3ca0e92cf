package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"botvance_backend/internal/services"

	"github.com/gorilla/mux"
)

// writeJSON writes a JSON response with the given status code. Marshaling
// happens before the headers go out so an encoding failure can still change
// the status.
func writeJSON(w http.ResponseWriter, statusCode int, response interface{}) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		log.Printf("failed to marshal JSON response: %v", err)
		statusCode = http.StatusInternalServerError
		jsonData = []byte(`{"success":false,"message":"Internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonData); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// authenticate validates the bearer token and returns the session claims the
// store operations are scoped by.
func authenticate(r *http.Request, auth *services.AuthService) (*services.JWTClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.New("invalid authorization header format")
	}

	return auth.ValidateToken(tokenString)
}

// pathID parses the numeric {id} route variable.
func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}
