package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/recallab/tetromino/pkg/log"
	"github.com/recallab/tetromino/pkg/repositories"
)

func HandleListSessions(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := repository.ListSessions(r.Context())
		if err != nil {
			log.Error("failed to list sessions: %v", err)
			http.Error(w, "Failed to list sessions", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := json.NewEncoder(w).Encode(sessions); err != nil {
			log.Error("failed to encode sessions: %v", err)
			http.Error(w, "Failed to encode sessions", http.StatusInternalServerError)
			return
		}
	}
}

func HandleGetSession(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.PathValue("sessionID")
		if sessionID == "" {
			http.Error(w, "Missing sessionID", http.StatusBadRequest)
			return
		}

		session, err := repository.GetSession(r.Context(), sessionID)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get session: %v", err)
			http.Error(w, "Failed to get session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := json.NewEncoder(w).Encode(session); err != nil {
			log.Error("failed to encode session: %v", err)
			http.Error(w, "Failed to encode session", http.StatusInternalServerError)
			return
		}
	}
}
