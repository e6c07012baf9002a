package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sweetlabs/sweetshop-be/internal/services"
)

const (
	defaultListLimit     = 100
	defaultRestockAmount = 10
)

// SweetHandler handles HTTP requests for the sweet inventory.
type SweetHandler struct {
	service services.SweetServiceProvider
}

// NewSweetHandler creates a new SweetHandler.
func NewSweetHandler(service services.SweetServiceProvider) *SweetHandler {
	return &SweetHandler{service: service}
}

// SweetPayload defines the structure for create and update requests.
type SweetPayload struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// GetAll handles the request to list sweets with optional offset/limit.
func (h *SweetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		http.Error(w, "Invalid offset parameter", http.StatusBadRequest)
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
		return
	}

	sweets, err := h.service.List(offset, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list sweets")
		http.Error(w, "Failed to list sweets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweets)
}

// Search handles the public search endpoint. Each filter is optional and the
// set filters are combined with AND.
func (h *SweetHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := services.SweetFilter{
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
	}

	var err error
	if filter.MinPrice, err = queryFloat(r, "minPrice"); err != nil {
		http.Error(w, "Invalid minPrice parameter", http.StatusBadRequest)
		return
	}
	if filter.MaxPrice, err = queryFloat(r, "maxPrice"); err != nil {
		http.Error(w, "Invalid maxPrice parameter", http.StatusBadRequest)
		return
	}

	sweets, err := h.service.Search(filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search sweets")
		http.Error(w, "Failed to search sweets", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweets)
}

// Create handles the request to add a new sweet to the inventory.
func (h *SweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload SweetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sweet, err := h.service.Create(payload.Name, payload.Category, payload.Price, payload.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create sweet")
		http.Error(w, "Failed to create sweet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sweet)
}

// Update handles the full replace of a sweet's fields.
func (h *SweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := sweetID(r)
	if err != nil {
		http.Error(w, "Invalid sweet ID", http.StatusBadRequest)
		return
	}

	var payload SweetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sweet, err := h.service.Update(id, payload.Name, payload.Category, payload.Price, payload.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Sweet not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Int64("sweet_id", id).Msg("Failed to update sweet")
			http.Error(w, "Failed to update sweet", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweet)
}

// Delete handles the removal of a sweet. Admin only.
func (h *SweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := sweetID(r)
	if err != nil {
		http.Error(w, "Invalid sweet ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Sweet not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("sweet_id", id).Msg("Failed to delete sweet")
		http.Error(w, "Failed to delete sweet", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Purchase handles buying a single unit of a sweet.
func (h *SweetHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	id, err := sweetID(r)
	if err != nil {
		http.Error(w, "Invalid sweet ID", http.StatusBadRequest)
		return
	}

	sweet, err := h.service.Purchase(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Sweet not found", http.StatusNotFound)
		case errors.Is(err, services.ErrOutOfStock):
			http.Error(w, "Sweet is out of stock", http.StatusBadRequest)
		default:
			log.Error().Err(err).Int64("sweet_id", id).Msg("Failed to purchase sweet")
			http.Error(w, "Failed to purchase sweet", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweet)
}

// Restock handles topping up a sweet's quantity. Admin only. The amount
// comes from the query string and defaults to 10.
func (h *SweetHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, err := sweetID(r)
	if err != nil {
		http.Error(w, "Invalid sweet ID", http.StatusBadRequest)
		return
	}

	amount, err := queryInt(r, "amount", defaultRestockAmount)
	if err != nil {
		http.Error(w, "Invalid amount parameter", http.StatusBadRequest)
		return
	}

	sweet, err := h.service.Restock(id, amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			http.Error(w, "Restock amount must be positive", http.StatusBadRequest)
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Sweet not found", http.StatusNotFound)
		default:
			log.Error().Err(err).Int64("sweet_id", id).Msg("Failed to restock sweet")
			http.Error(w, "Failed to restock sweet", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sweet)
}

func sweetID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
