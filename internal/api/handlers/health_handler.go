package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
)

// HealthHandler serves the root status and database diagnostics endpoints.
// This is the one place a store failure is caught and reported distinctly.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root reports that the backend is up.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "Sweet Shop Backend is Running"})
}

// TestDB checks that the database answers a trivial query.
func (h *HealthHandler) TestDB(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var one int
	if err := h.db.Get(&one, "SELECT 1"); err != nil {
		json.NewEncoder(w).Encode(map[string]string{
			"status": "Database connection failed",
			"detail": err.Error(),
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "Database connection successful"})
}
