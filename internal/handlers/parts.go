package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// PartHandler handles inventory part requests.
type PartHandler struct {
	parts db.PartCollection
}

// NewPartHandler creates a new part handler.
func NewPartHandler(parts db.PartCollection) *PartHandler {
	return &PartHandler{parts: parts}
}

// PartRequest is the payload for creating or updating a part.
type PartRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Kind            string  `json:"kind" validate:"required"`
	QuantityInStock int     `json:"quantity_in_stock" validate:"gte=0"`
	MinimumStock    int     `json:"minimum_stock" validate:"gte=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	SupplierID      string  `json:"supplier_id"`
	Status          string  `json:"status" validate:"omitempty,oneof=available reserved out_of_service"`
}

// Create registers a new inventory part.
func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req PartRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := models.ParsePartKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	part := models.Part{
		Name:            req.Name,
		Brand:           req.Brand,
		Model:           req.Model,
		Kind:            kind,
		QuantityInStock: req.QuantityInStock,
		MinimumStock:    req.MinimumStock,
		UnitPrice:       req.UnitPrice,
		EntryDate:       time.Now(),
		SupplierID:      req.SupplierID,
		Status:          req.Status,
	}
	if part.Status == "" {
		part.Status = "available"
	}

	if err := h.parts.InsertPart(r.Context(), part); err != nil {
		http.Error(w, "Failed to create part", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(part)
}

// Get returns one part by ID.
func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	part, err := h.parts.FindPartByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Part not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(part)
}

// List returns parts, optionally filtered by kind or supplier.
func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := models.ParsePartKind(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter["kind"] = kind
	}
	if supplierID := r.URL.Query().Get("supplier_id"); supplierID != "" {
		filter["supplier_id"] = supplierID
	}

	parts, err := h.parts.FindParts(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query parts", http.StatusInternalServerError)
		return
	}
	if parts == nil {
		parts = []models.Part{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parts)
}

// LowStock returns parts at or below their reorder threshold, the feed for
// purchase order suggestions.
func (h *PartHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	parts, err := h.parts.FindLowStockParts(r.Context())
	if err != nil {
		http.Error(w, "Failed to query parts", http.StatusInternalServerError)
		return
	}
	if parts == nil {
		parts = []models.Part{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parts)
}

// Update edits a part.
func (h *PartHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req PartRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := models.ParsePartKind(req.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	part, err := h.parts.FindPartByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Part not found", http.StatusNotFound)
		return
	}

	part.Name = req.Name
	part.Brand = req.Brand
	part.Model = req.Model
	part.Kind = kind
	part.QuantityInStock = req.QuantityInStock
	part.MinimumStock = req.MinimumStock
	part.UnitPrice = req.UnitPrice
	part.SupplierID = req.SupplierID
	if req.Status != "" {
		part.Status = req.Status
	}

	if err := h.parts.UpdatePart(r.Context(), id, *part); err != nil {
		http.Error(w, "Failed to update part", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(part)
}

// Delete removes a part.
func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.parts.DeletePart(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Failed to delete part", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
