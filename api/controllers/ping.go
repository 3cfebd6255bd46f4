package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/api/responses"
)

// Ping echoes the resolved browsing session so clients can confirm cookie round trips.
func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"status": "ok"}
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			payload["session_id"] = sessionID
		}
		responses.WriteSuccess(w, payload)
	}
}
