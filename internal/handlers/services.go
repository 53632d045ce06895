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

// ServiceHandler handles service order requests.
type ServiceHandler struct {
	services     db.ServiceCollection
	orchestrator *workshop.Orchestrator
}

// NewServiceHandler creates a new service order handler.
func NewServiceHandler(services db.ServiceCollection, orchestrator *workshop.Orchestrator) *ServiceHandler {
	return &ServiceHandler{services: services, orchestrator: orchestrator}
}

// CreateServiceRequest is the payload for opening a service order.
type CreateServiceRequest struct {
	MaintenanceType  string   `json:"maintenance_type" validate:"required,oneof=PREVENTIVE CORRECTIVE"`
	VehicleID        string   `json:"vehicle_id" validate:"required"`
	TechnicianID     string   `json:"technician_id"`
	Mileage          *float64 `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Description      string   `json:"description" validate:"required,max=500"`
	InitialDiagnosis string   `json:"initial_diagnosis"`
	EstimatedTime    string   `json:"estimated_time"`
	LaborCost        float64  `json:"labor_cost" validate:"gte=0"`
}

// Create opens a new service order. New services always start PENDING.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req CreateServiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	maintenanceType, err := models.ParseMaintenanceType(req.MaintenanceType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	service := models.Service{
		MaintenanceType:  maintenanceType,
		VehicleID:        req.VehicleID,
		TechnicianID:     req.TechnicianID,
		Mileage:          req.Mileage,
		Description:      req.Description,
		InitialDiagnosis: req.InitialDiagnosis,
		EstimatedTime:    req.EstimatedTime,
		LaborCost:        req.LaborCost,
		Status:           models.ServicePending,
	}

	id, err := h.services.InsertService(r.Context(), service)
	if err != nil {
		http.Error(w, "Failed to create service", http.StatusInternalServerError)
		return
	}

	created, err := h.services.FindServiceByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load created service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Get returns one service order by ID.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	service, err := h.services.FindServiceByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// List returns service orders, optionally filtered by status or vehicle.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseServiceStatus(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter["status"] = status
	}
	if vehicleID := r.URL.Query().Get("vehicle_id"); vehicleID != "" {
		filter["vehicle_id"] = vehicleID
	}

	cursor, err := h.services.FindServices(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query services", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	services := []models.Service{}
	if err := cursor.All(r.Context(), &services); err != nil {
		http.Error(w, "Failed to decode services", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

// UpdateServiceRequest is the payload for editing a service order's
// descriptive fields. Status never changes here; that goes through
// ChangeStatus.
type UpdateServiceRequest struct {
	TechnicianID      *string  `json:"technician_id,omitempty"`
	Mileage           *float64 `json:"mileage,omitempty" validate:"omitempty,gte=0"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	InitialDiagnosis  *string  `json:"initial_diagnosis,omitempty"`
	FinalObservations *string  `json:"final_observations,omitempty"`
	EstimatedTime     *string  `json:"estimated_time,omitempty"`
	LaborCost         *float64 `json:"labor_cost,omitempty" validate:"omitempty,gte=0"`
}

// Update edits a service order's descriptive fields.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req UpdateServiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	service, err := h.services.FindServiceByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	if req.TechnicianID != nil {
		service.TechnicianID = *req.TechnicianID
	}
	if req.Mileage != nil {
		service.Mileage = req.Mileage
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.InitialDiagnosis != nil {
		service.InitialDiagnosis = *req.InitialDiagnosis
	}
	if req.FinalObservations != nil {
		service.FinalObservations = *req.FinalObservations
	}
	if req.EstimatedTime != nil {
		service.EstimatedTime = *req.EstimatedTime
	}
	if req.LaborCost != nil {
		service.LaborCost = *req.LaborCost
	}

	if err := h.services.UpdateService(r.Context(), id, *service); err != nil {
		http.Error(w, "Failed to update service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// Delete removes a service order.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.services.DeleteService(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatusRequest is the payload for advancing a service order.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus advances a service order through the lifecycle. Illegal
// transitions leave the stored record unchanged and return 409.
func (h *ServiceHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req ChangeStatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target, err := models.ParseServiceStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	service, err := h.orchestrator.AdvanceService(r.Context(), r.PathValue("id"), target)
	if err != nil {
		switch {
		case errors.Is(err, workshop.ErrServiceNotFound):
			http.Error(w, "Service not found", http.StatusNotFound)
		case errors.Is(err, lifecycle.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to change service status", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// Invoice derives and returns the invoice figures for a service.
func (h *ServiceHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.orchestrator.ServiceInvoice(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, workshop.ErrServiceNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to compute invoice", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// RecordUsageRequest is the payload for consuming a part on a service.
type RecordUsageRequest struct {
	PartID   string `json:"part_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// RecordUsage consumes stock for a service order.
func (h *ServiceHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req RecordUsageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	usage, err := h.orchestrator.RecordPartUsage(r.Context(), r.PathValue("id"), req.PartID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, workshop.ErrServiceNotFound):
			http.Error(w, "Service not found", http.StatusNotFound)
		case errors.Is(err, workshop.ErrInsufficientStock):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to record part usage", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(usage)
}

// warrantyResponse reports whether a service is still under warranty.
type warrantyResponse struct {
	ServiceID     string     `json:"service_id"`
	UnderWarranty bool       `json:"under_warranty"`
	WarrantyUntil *time.Time `json:"warranty_until,omitempty"`
}

// Warranty reports the warranty window of a service order.
func (h *ServiceHandler) Warranty(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	service, err := h.services.FindServiceByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	resp := warrantyResponse{ServiceID: id, WarrantyUntil: service.WarrantyUntil}
	if service.WarrantyUntil != nil {
		resp.UnderWarranty = time.Now().Before(*service.WarrantyUntil)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
