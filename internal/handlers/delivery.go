package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/lifecycle"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/workshop"
	"go.mongodb.org/mongo-driver/bson"
)

// DeliveryHandler handles delivery order requests. Creation and deletion go
// through the orchestrator so the paired service status change is never
// applied on its own.
type DeliveryHandler struct {
	deliveries   db.DeliveryOrderCollection
	orchestrator *workshop.Orchestrator
}

// NewDeliveryHandler creates a new delivery order handler.
func NewDeliveryHandler(deliveries db.DeliveryOrderCollection, orchestrator *workshop.Orchestrator) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries, orchestrator: orchestrator}
}

// CreateDeliveryRequest is the payload for handing a vehicle back.
type CreateDeliveryRequest struct {
	ServiceID            string `json:"service_id" validate:"required"`
	DeliveredBy          string `json:"delivered_by" validate:"required"`
	ReceivedBy           string `json:"received_by" validate:"required"`
	CustomerSatisfaction int    `json:"customer_satisfaction" validate:"required,min=1,max=5"`
	CustomerFeedback     string `json:"customer_feedback"`
	FollowUpRequired     bool   `json:"follow_up_required"`
	Notes                string `json:"notes"`
}

// Create registers the handover of a vehicle. The paired service must be
// COMPLETED; it becomes DELIVERED together with the insert.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req CreateDeliveryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	satisfaction, err := models.ParseCustomerSatisfaction(req.CustomerSatisfaction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order := models.DeliveryOrder{
		ServiceID:            req.ServiceID,
		DeliveryDate:         time.Now(),
		DeliveredBy:          req.DeliveredBy,
		ReceivedBy:           req.ReceivedBy,
		CustomerSatisfaction: satisfaction,
		CustomerFeedback:     req.CustomerFeedback,
		FollowUpRequired:     req.FollowUpRequired,
		Notes:                req.Notes,
	}

	created, err := h.orchestrator.CreateDeliveryOrder(r.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, workshop.ErrServiceNotFound):
			http.Error(w, "Service not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrNotCompleted), errors.Is(err, workshop.ErrDeliveryOrderExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to create delivery order", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Get returns one delivery order by ID.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.deliveries.FindDeliveryOrderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Delivery order not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// List returns delivery orders, optionally filtered by service.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if serviceID := r.URL.Query().Get("service_id"); serviceID != "" {
		filter["service_id"] = serviceID
	}
	orders, err := h.deliveries.FindDeliveryOrders(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query delivery orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.DeliveryOrder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// Delete reverts a handover. The paired service returns to COMPLETED
// together with the removal.
func (h *DeliveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.DeleteDeliveryOrder(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, lifecycle.ErrNotDelivered) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to delete delivery order", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
