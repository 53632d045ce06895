package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/purchasing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PurchaseOrderHandler handles purchase order requests. Every detail
// mutation goes through the purchasing package so the stored total is never
// stale.
type PurchaseOrderHandler struct {
	orders db.PurchaseOrderCollection
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(orders db.PurchaseOrderCollection) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orders: orders}
}

// DetailRequest is one line item in a purchase order payload.
type DetailRequest struct {
	PartID             string  `json:"part_id" validate:"required"`
	QuantityOrdered    int     `json:"quantity_ordered" validate:"required,gt=0"`
	EstimatedUnitPrice float64 `json:"estimated_unit_price" validate:"gte=0"`
}

// CreateOrderRequest is the payload for placing a purchase order.
type CreateOrderRequest struct {
	SupplierID   string          `json:"supplier_id" validate:"required"`
	ExpectedDate *time.Time      `json:"expected_date,omitempty"`
	Notes        string          `json:"notes"`
	Details      []DetailRequest `json:"details" validate:"dive"`
}

// Create places a new purchase order. New orders always start PENDING and
// their total is derived from the submitted details.
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req CreateOrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order := models.PurchaseOrder{
		SupplierID:   req.SupplierID,
		OrderDate:    time.Now(),
		ExpectedDate: req.ExpectedDate,
		Status:       models.OrderPending,
		Notes:        req.Notes,
	}
	details := make([]models.PurchaseOrderDetail, 0, len(req.Details))
	for _, d := range req.Details {
		details = append(details, models.PurchaseOrderDetail{
			PartID:             d.PartID,
			QuantityOrdered:    d.QuantityOrdered,
			EstimatedUnitPrice: d.EstimatedUnitPrice,
		})
	}
	if err := purchasing.SetDetails(&order, details); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.orders.InsertPurchaseOrder(r.Context(), order)
	if err != nil {
		http.Error(w, "Failed to create purchase order", http.StatusInternalServerError)
		return
	}

	created, err := h.orders.FindPurchaseOrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load created purchase order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Get returns one purchase order, details included.
func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.FindPurchaseOrderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Purchase order not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// List returns purchase orders, optionally filtered by supplier or status.
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if supplierID := r.URL.Query().Get("supplier_id"); supplierID != "" {
		filter["supplier_id"] = supplierID
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParsePurchaseOrderStatus(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter["status"] = status
	}
	orders, err := h.orders.FindPurchaseOrders(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query purchase orders", http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []models.PurchaseOrder{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

// AddDetail appends a line item to an order and stores the recomputed total.
func (h *PurchaseOrderHandler) AddDetail(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req DetailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	order, err := h.orders.FindPurchaseOrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Purchase order not found", http.StatusNotFound)
		return
	}

	detail := models.PurchaseOrderDetail{
		PartID:             req.PartID,
		QuantityOrdered:    req.QuantityOrdered,
		EstimatedUnitPrice: req.EstimatedUnitPrice,
	}
	if err := purchasing.AddDetail(order, detail); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.orders.UpdatePurchaseOrder(r.Context(), id, *order); err != nil {
		http.Error(w, "Failed to update purchase order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// RemoveDetail deletes a line item and stores the recomputed total. An
// unknown detail ID leaves the order untouched and returns 404.
func (h *PurchaseOrderHandler) RemoveDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	detailID, err := primitive.ObjectIDFromHex(r.PathValue("detailId"))
	if err != nil {
		http.Error(w, "Invalid detail ID", http.StatusBadRequest)
		return
	}

	order, err := h.orders.FindPurchaseOrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Purchase order not found", http.StatusNotFound)
		return
	}

	if !purchasing.RemoveDetail(order, detailID) {
		http.Error(w, "Detail not found", http.StatusNotFound)
		return
	}

	if err := h.orders.UpdatePurchaseOrder(r.Context(), id, *order); err != nil {
		http.Error(w, "Failed to update purchase order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// ChangeOrderStatusRequest is the payload for moving a purchase order along.
type ChangeOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus updates a purchase order's status. Reaching RECEIVED stamps
// the actual delivery date.
func (h *PurchaseOrderHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req ChangeOrderStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	status, err := models.ParsePurchaseOrderStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	order, err := h.orders.FindPurchaseOrderByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Purchase order not found", http.StatusNotFound)
		return
	}

	order.Status = status
	if status == models.OrderReceived && order.ActualDeliveryDate == nil {
		now := time.Now()
		order.ActualDeliveryDate = &now
	}

	if err := h.orders.UpdatePurchaseOrder(r.Context(), id, *order); err != nil {
		http.Error(w, "Failed to update purchase order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// Delete removes a purchase order.
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.DeletePurchaseOrder(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			http.Error(w, "Invalid purchase order ID", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to delete purchase order", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
