package api

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// errorResponse is the body of every 4xx response
type errorResponse struct {
	Error string `json:"error"`
}

// sendJSONResponse is a common wrapper for JSON responses that sets Content-Type,
// Content-Length and ETag headers
func (s *Server) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusOK, data)
}

func (s *Server) sendJSONResponseWithStatus(w http.ResponseWriter, status int, data interface{}) {
	responseBytes, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	// Calculate ETag (MD5 hash of the response)
	hash := md5.Sum(responseBytes)
	etag := hex.EncodeToString(hash[:])

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseBytes)))
	w.Header().Set("ETag", "\""+etag+"\"")
	w.WriteHeader(status)

	if _, err := w.Write(responseBytes); err != nil {
		log.Printf("Error writing response: %v", err)
		return
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	s.sendJSONResponseWithStatus(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}
}

func getParamLowercase(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
}

// getIntParam parses an optional integer query parameter; missing means 0
func getIntParam(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return value, nil
}
