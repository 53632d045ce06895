package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/rating"
	"go.mongodb.org/mongo-driver/bson"
)

// SupplierHandler handles supplier and supplier evaluation requests.
type SupplierHandler struct {
	suppliers   db.SupplierCollection
	evaluations db.EvaluationCollection
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(suppliers db.SupplierCollection, evaluations db.EvaluationCollection) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers, evaluations: evaluations}
}

// SupplierRequest is the payload for creating or updating a supplier.
type SupplierRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	NIT            string `json:"nit" validate:"required"`
	Contact        string `json:"contact"`
	VisitFrequency string `json:"visit_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	Status         string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Create registers a new supplier.
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req SupplierRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	supplier := models.Supplier{
		Name:           req.Name,
		NIT:            req.NIT,
		Contact:        req.Contact,
		VisitFrequency: req.VisitFrequency,
		Status:         req.Status,
	}
	if supplier.Status == "" {
		supplier.Status = "active"
	}

	if err := h.suppliers.InsertSupplier(r.Context(), supplier); err != nil {
		http.Error(w, "Failed to create supplier", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(supplier)
}

// Get returns one supplier by ID.
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.suppliers.FindSupplierByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(supplier)
}

// List returns all suppliers.
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.FindSuppliers(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to query suppliers", http.StatusInternalServerError)
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(suppliers)
}

// Update edits a supplier.
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req SupplierRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	supplier, err := h.suppliers.FindSupplierByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}

	supplier.Name = req.Name
	supplier.NIT = req.NIT
	supplier.Contact = req.Contact
	if req.VisitFrequency != "" {
		supplier.VisitFrequency = req.VisitFrequency
	}
	if req.Status != "" {
		supplier.Status = req.Status
	}

	if err := h.suppliers.UpdateSupplier(r.Context(), id, *supplier); err != nil {
		http.Error(w, "Failed to update supplier", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(supplier)
}

// Delete removes a supplier.
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.suppliers.DeleteSupplier(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Failed to delete supplier", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EvaluationRequest is the payload for filing a supplier evaluation.
type EvaluationRequest struct {
	DeliveryRating      int    `json:"delivery_rating" validate:"required,min=1,max=5"`
	QualityRating       int    `json:"quality_rating" validate:"required,min=1,max=5"`
	PriceRating         int    `json:"price_rating" validate:"required,min=1,max=5"`
	CommunicationRating int    `json:"communication_rating" validate:"required,min=1,max=5"`
	Comments            string `json:"comments"`
}

// CreateEvaluation files an evaluation for a supplier. The whole evaluation
// is rejected when any axis is out of range; nothing is stored partially.
func (h *SupplierHandler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	supplierID := r.PathValue("id")
	if _, err := h.suppliers.FindSupplierByID(r.Context(), supplierID); err != nil {
		http.Error(w, "Supplier not found", http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req EvaluationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	eval := models.SupplierEvaluation{
		SupplierID:          supplierID,
		EvaluationDate:      time.Now(),
		DeliveryRating:      req.DeliveryRating,
		QualityRating:       req.QualityRating,
		PriceRating:         req.PriceRating,
		CommunicationRating: req.CommunicationRating,
		Comments:            req.Comments,
	}
	rating.Recompute(&eval)
	if err := rating.Validate(&eval); err != nil {
		if errors.Is(err, rating.ErrRatingOutOfRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Invalid evaluation", http.StatusBadRequest)
		return
	}

	if err := h.evaluations.InsertEvaluation(r.Context(), eval); err != nil {
		http.Error(w, "Failed to create evaluation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(eval)
}

// ListEvaluations returns all evaluations filed for a supplier.
func (h *SupplierHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	evals, err := h.evaluations.FindEvaluationsBySupplier(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Failed to query evaluations", http.StatusInternalServerError)
		return
	}
	if evals == nil {
		evals = []models.SupplierEvaluation{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(evals)
}

// supplierRatingResponse is the aggregate rating for one supplier.
type supplierRatingResponse struct {
	SupplierID    string  `json:"supplier_id"`
	AverageRating float64 `json:"average_rating"`
	Evaluations   int     `json:"evaluations"`
}

// Rating returns the mean total rating across a supplier's evaluations.
func (h *SupplierHandler) Rating(w http.ResponseWriter, r *http.Request) {
	supplierID := r.PathValue("id")
	evals, err := h.evaluations.FindEvaluationsBySupplier(r.Context(), supplierID)
	if err != nil {
		http.Error(w, "Failed to query evaluations", http.StatusInternalServerError)
		return
	}

	resp := supplierRatingResponse{
		SupplierID:    supplierID,
		AverageRating: rating.AverageRating(evals),
		Evaluations:   len(evals),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
