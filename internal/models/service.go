package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceType classifies a service as scheduled upkeep or repair.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "PREVENTIVE"
	MaintenanceCorrective MaintenanceType = "CORRECTIVE"
)

// ParseMaintenanceType converts a raw string into a MaintenanceType.
func ParseMaintenanceType(s string) (MaintenanceType, error) {
	switch MaintenanceType(s) {
	case MaintenancePreventive, MaintenanceCorrective:
		return MaintenanceType(s), nil
	default:
		return "", fmt.Errorf("unknown maintenance type %q", s)
	}
}

// ServiceStatus is the closed set of states a service moves through.
type ServiceStatus string

const (
	ServicePending    ServiceStatus = "PENDING"
	ServiceInProgress ServiceStatus = "IN_PROGRESS"
	ServiceCompleted  ServiceStatus = "COMPLETED"
	ServiceDelivered  ServiceStatus = "DELIVERED"
	ServiceCancelled  ServiceStatus = "CANCELLED"
)

// ParseServiceStatus converts a raw string into a ServiceStatus.
func ParseServiceStatus(s string) (ServiceStatus, error) {
	switch ServiceStatus(s) {
	case ServicePending, ServiceInProgress, ServiceCompleted, ServiceDelivered, ServiceCancelled:
		return ServiceStatus(s), nil
	default:
		return "", fmt.Errorf("unknown service status %q", s)
	}
}

// Terminal reports whether no further work can happen on a service in this state.
func (s ServiceStatus) Terminal() bool {
	return s == ServiceDelivered || s == ServiceCancelled
}

// Service represents a repair or maintenance order on a customer vehicle.
type Service struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MaintenanceType   MaintenanceType    `json:"maintenance_type" bson:"maintenance_type"`
	VehicleID         string             `json:"vehicle_id" bson:"vehicle_id"`
	TechnicianID      string             `json:"technician_id" bson:"technician_id"`
	Mileage           *float64           `json:"mileage,omitempty" bson:"mileage,omitempty"` // in kilometers
	Description       string             `json:"description" bson:"description"`
	InitialDiagnosis  string             `json:"initial_diagnosis" bson:"initial_diagnosis"`
	FinalObservations string             `json:"final_observations" bson:"final_observations"`
	EstimatedTime     string             `json:"estimated_time" bson:"estimated_time"`
	LaborCost         float64            `json:"labor_cost" bson:"labor_cost"` // in COP
	Status            ServiceStatus      `json:"status" bson:"status"`
	StartDate         *time.Time         `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate           *time.Time         `json:"end_date,omitempty" bson:"end_date,omitempty"`
	WarrantyUntil     *time.Time         `json:"warranty_until,omitempty" bson:"warranty_until,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// WarrantyPeriod returns how long the shop guarantees the work, by maintenance type.
func (t MaintenanceType) WarrantyPeriod() time.Duration {
	if t == MaintenanceCorrective {
		return 30 * 24 * time.Hour
	}
	return 15 * 24 * time.Hour
}
