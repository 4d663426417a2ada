package server

import (
	"encoding/json"
	"net/http"

	"github.com/openhunt/openhunt/pkg/store"
)

// listResponse is the envelope for collection endpoints. Message is
// only set for degraded responses.
type listResponse struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondList answers a read endpoint. An unavailable backend degrades
// to a successful empty payload with an explanatory message; any other
// failure is a hard server error.
func (s *Server) respondList(w http.ResponseWriter, r *http.Request, data interface{}, empty interface{}, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, listResponse{Data: data})
		return
	}
	if store.Unavailable(err) {
		s.log.Warn("backend unavailable, serving degraded response", "error", err)
		writeJSON(w, http.StatusOK, listResponse{
			Data:    empty,
			Message: message(lang(r), "backend_unavailable"),
		})
		return
	}
	s.log.Error("backend failure", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": message(lang(r), "internal_error"),
	})
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("backend failure", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": message(lang(r), "internal_error"),
	})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": message(lang(r), "not_found"),
	})
}
