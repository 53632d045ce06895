package db

import (
	"context"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServiceCollection defines the interface for service order data operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, service models.Service) (string, error)
	FindServiceByID(ctx context.Context, id string) (*models.Service, error)
	FindServices(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (ServiceCursor, error)
	UpdateService(ctx context.Context, id string, service models.Service) error
	DeleteService(ctx context.Context, id string) error
}

// ServiceCursor defines the interface for service cursor operations.
type ServiceCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}

// PartUsageCollection defines the interface for part consumption records.
type PartUsageCollection interface {
	InsertPartUsage(ctx context.Context, usage models.PartUsage) error
	FindUsageByService(ctx context.Context, serviceID string) ([]models.PartUsage, error)
	UpdatePartUsage(ctx context.Context, id string, usage models.PartUsage) error
	DeletePartUsage(ctx context.Context, id string) error
}

// DeliveryOrderCollection defines the interface for delivery order records.
type DeliveryOrderCollection interface {
	InsertDeliveryOrder(ctx context.Context, order models.DeliveryOrder) (string, error)
	FindDeliveryOrderByID(ctx context.Context, id string) (*models.DeliveryOrder, error)
	FindDeliveryOrderByService(ctx context.Context, serviceID string) (*models.DeliveryOrder, error)
	FindDeliveryOrders(ctx context.Context, filter bson.M) ([]models.DeliveryOrder, error)
	DeleteDeliveryOrder(ctx context.Context, id string) error
}

// PurchaseOrderCollection defines the interface for purchase order records.
// Orders embed their detail list, so updates replace the whole document.
type PurchaseOrderCollection interface {
	InsertPurchaseOrder(ctx context.Context, order models.PurchaseOrder) (string, error)
	FindPurchaseOrderByID(ctx context.Context, id string) (*models.PurchaseOrder, error)
	FindPurchaseOrders(ctx context.Context, filter bson.M) ([]models.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, id string, order models.PurchaseOrder) error
	DeletePurchaseOrder(ctx context.Context, id string) error
}

// EvaluationCollection defines the interface for supplier evaluation records.
type EvaluationCollection interface {
	InsertEvaluation(ctx context.Context, eval models.SupplierEvaluation) error
	FindEvaluationsBySupplier(ctx context.Context, supplierID string) ([]models.SupplierEvaluation, error)
	UpdateEvaluation(ctx context.Context, id string, eval models.SupplierEvaluation) error
	DeleteEvaluation(ctx context.Context, id string) error
}

// PartCollection defines the interface for inventory part records.
type PartCollection interface {
	InsertPart(ctx context.Context, part models.Part) error
	FindPartByID(ctx context.Context, id string) (*models.Part, error)
	FindParts(ctx context.Context, filter bson.M) ([]models.Part, error)
	FindLowStockParts(ctx context.Context) ([]models.Part, error)
	UpdatePart(ctx context.Context, id string, part models.Part) error
	DeletePart(ctx context.Context, id string) error
}

// SupplierCollection defines the interface for supplier records.
type SupplierCollection interface {
	InsertSupplier(ctx context.Context, supplier models.Supplier) error
	FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error)
	FindSuppliers(ctx context.Context, filter bson.M) ([]models.Supplier, error)
	UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error
	DeleteSupplier(ctx context.Context, id string) error
}

// VehicleCollection defines the interface for vehicle data operations.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error)
	FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error
}

// TechnicianCollection defines the interface for technician records.
type TechnicianCollection interface {
	InsertTechnician(ctx context.Context, technician models.Technician) error
	FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error)
	FindTechnicians(ctx context.Context, filter bson.M) ([]models.Technician, error)
	UpdateTechnician(ctx context.Context, id string, technician models.Technician) error
	DeleteTechnician(ctx context.Context, id string) error
}

// CustomerCollection defines the interface for customer records.
type CustomerCollection interface {
	InsertCustomer(ctx context.Context, customer models.Customer) error
	FindCustomerByID(ctx context.Context, id string) (*models.Customer, error)
	FindCustomers(ctx context.Context, filter bson.M) ([]models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, customer models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error
}
