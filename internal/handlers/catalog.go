package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// VehicleHandler handles vehicle requests.
type VehicleHandler struct {
	vehicles db.VehicleCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// VehicleRequest is the payload for creating or updating a vehicle.
type VehicleRequest struct {
	Brand      string  `json:"brand" validate:"required"`
	Model      string  `json:"model" validate:"required"`
	Plate      string  `json:"plate" validate:"required"`
	Type       string  `json:"type" validate:"required,oneof=car motorcycle truck van"`
	CustomerID string  `json:"customer_id" validate:"required"`
	Mileage    float64 `json:"mileage" validate:"gte=0"`
}

// Create registers a customer vehicle.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req VehicleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicle := models.Vehicle{
		Brand:      req.Brand,
		Model:      req.Model,
		Plate:      req.Plate,
		Type:       req.Type,
		CustomerID: req.CustomerID,
		Mileage:    req.Mileage,
	}

	id, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		http.Error(w, "Failed to create vehicle", http.StatusInternalServerError)
		return
	}

	created, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load created vehicle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Get returns one vehicle by ID.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicle)
}

// List returns vehicles, optionally filtered by customer.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		filter["customer_id"] = customerID
	}
	vehicles, err := h.vehicles.FindVehicles(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to query vehicles", http.StatusInternalServerError)
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicles)
}

// Update edits a vehicle.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req VehicleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}

	vehicle.Brand = req.Brand
	vehicle.Model = req.Model
	vehicle.Plate = req.Plate
	vehicle.Type = req.Type
	vehicle.CustomerID = req.CustomerID
	vehicle.Mileage = req.Mileage

	if err := h.vehicles.UpdateVehicle(r.Context(), id, *vehicle); err != nil {
		http.Error(w, "Failed to update vehicle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vehicle)
}

// Delete removes a vehicle.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.vehicles.DeleteVehicle(r.Context(), r.PathValue("id")); err != nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TechnicianHandler handles technician requests.
type TechnicianHandler struct {
	technicians db.TechnicianCollection
}

// NewTechnicianHandler creates a new technician handler.
func NewTechnicianHandler(technicians db.TechnicianCollection) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians}
}

// TechnicianRequest is the payload for registering a technician.
type TechnicianRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	DocumentID string `json:"document_id" validate:"required"`
	Specialty  string `json:"specialty" validate:"omitempty,oneof=engine electrical bodywork general"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// Create registers a technician.
func (h *TechnicianHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req TechnicianRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	technician := models.Technician{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Specialty:  req.Specialty,
		Phone:      req.Phone,
		Email:      req.Email,
		Status:     "active",
	}

	if err := h.technicians.InsertTechnician(r.Context(), technician); err != nil {
		http.Error(w, "Failed to create technician", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(technician)
}

// Get returns one technician by ID.
func (h *TechnicianHandler) Get(w http.ResponseWriter, r *http.Request) {
	technician, err := h.technicians.FindTechnicianByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Technician not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(technician)
}

// List returns all technicians.
func (h *TechnicianHandler) List(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.technicians.FindTechnicians(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to query technicians", http.StatusInternalServerError)
		return
	}
	if technicians == nil {
		technicians = []models.Technician{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(technicians)
}

// CustomerHandler handles customer requests.
type CustomerHandler struct {
	customers db.CustomerCollection
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(customers db.CustomerCollection) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// CustomerRequest is the payload for registering a customer.
type CustomerRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	DocumentID string `json:"document_id" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address"`
}

// Create registers a customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req CustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	customer := models.Customer{
		Name:       req.Name,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
	}

	if err := h.customers.InsertCustomer(r.Context(), customer); err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(customer)
}

// Get returns one customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.FindCustomerByID(r.Context(), r.PathValue("id"))
	if err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customer)
}

// List returns all customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.FindCustomers(r.Context(), bson.M{})
	if err != nil {
		http.Error(w, "Failed to query customers", http.StatusInternalServerError)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}
