package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
)

type MockServiceCollection struct {
	mock.Mock
}

func (m *MockServiceCollection) InsertService(ctx context.Context, service models.Service) (string, error) {
	args := m.Called(ctx, service)
	return args.String(0), args.Error(1)
}

func (m *MockServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	args := m.Called(ctx, id)
	if svc, ok := args.Get(0).(*models.Service); ok {
		return svc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceCollection) FindServices(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (db.ServiceCursor, error) {
	args := m.Called(ctx, filter)
	if cur, ok := args.Get(0).(db.ServiceCursor); ok {
		return cur, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockServiceCollection) UpdateService(ctx context.Context, id string, service models.Service) error {
	args := m.Called(ctx, id, service)
	return args.Error(0)
}

func (m *MockServiceCollection) DeleteService(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeServiceCursor yields a fixed slice of services.
type fakeServiceCursor struct {
	services []models.Service
}

func (c *fakeServiceCursor) All(ctx context.Context, out interface{}) error {
	*(out.(*[]models.Service)) = c.services
	return nil
}

func (c *fakeServiceCursor) Close(ctx context.Context) error { return nil }

type MockUsageCollection struct {
	mock.Mock
}

func (m *MockUsageCollection) InsertPartUsage(ctx context.Context, usage models.PartUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockUsageCollection) FindUsageByService(ctx context.Context, serviceID string) ([]models.PartUsage, error) {
	args := m.Called(ctx, serviceID)
	if usage, ok := args.Get(0).([]models.PartUsage); ok {
		return usage, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsageCollection) UpdatePartUsage(ctx context.Context, id string, usage models.PartUsage) error {
	args := m.Called(ctx, id, usage)
	return args.Error(0)
}

func (m *MockUsageCollection) DeletePartUsage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeliveryCollection struct {
	mock.Mock
}

func (m *MockDeliveryCollection) InsertDeliveryOrder(ctx context.Context, order models.DeliveryOrder) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *MockDeliveryCollection) FindDeliveryOrderByID(ctx context.Context, id string) (*models.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.DeliveryOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryCollection) FindDeliveryOrderByService(ctx context.Context, serviceID string) (*models.DeliveryOrder, error) {
	args := m.Called(ctx, serviceID)
	if order, ok := args.Get(0).(*models.DeliveryOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryCollection) FindDeliveryOrders(ctx context.Context, filter bson.M) ([]models.DeliveryOrder, error) {
	args := m.Called(ctx, filter)
	if orders, ok := args.Get(0).([]models.DeliveryOrder); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryCollection) DeleteDeliveryOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPartCollection struct {
	mock.Mock
}

func (m *MockPartCollection) InsertPart(ctx context.Context, part models.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}

func (m *MockPartCollection) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	args := m.Called(ctx, id)
	if part, ok := args.Get(0).(*models.Part); ok {
		return part, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartCollection) FindParts(ctx context.Context, filter bson.M) ([]models.Part, error) {
	args := m.Called(ctx, filter)
	if parts, ok := args.Get(0).([]models.Part); ok {
		return parts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartCollection) FindLowStockParts(ctx context.Context) ([]models.Part, error) {
	args := m.Called(ctx)
	if parts, ok := args.Get(0).([]models.Part); ok {
		return parts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPartCollection) UpdatePart(ctx context.Context, id string, part models.Part) error {
	args := m.Called(ctx, id, part)
	return args.Error(0)
}

func (m *MockPartCollection) DeletePart(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSupplierCollection struct {
	mock.Mock
}

func (m *MockSupplierCollection) InsertSupplier(ctx context.Context, supplier models.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierCollection) FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	args := m.Called(ctx, id)
	if supplier, ok := args.Get(0).(*models.Supplier); ok {
		return supplier, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierCollection) FindSuppliers(ctx context.Context, filter bson.M) ([]models.Supplier, error) {
	args := m.Called(ctx, filter)
	if suppliers, ok := args.Get(0).([]models.Supplier); ok {
		return suppliers, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSupplierCollection) UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error {
	args := m.Called(ctx, id, supplier)
	return args.Error(0)
}

func (m *MockSupplierCollection) DeleteSupplier(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEvaluationCollection struct {
	mock.Mock
}

func (m *MockEvaluationCollection) InsertEvaluation(ctx context.Context, eval models.SupplierEvaluation) error {
	args := m.Called(ctx, eval)
	return args.Error(0)
}

func (m *MockEvaluationCollection) FindEvaluationsBySupplier(ctx context.Context, supplierID string) ([]models.SupplierEvaluation, error) {
	args := m.Called(ctx, supplierID)
	if evals, ok := args.Get(0).([]models.SupplierEvaluation); ok {
		return evals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEvaluationCollection) UpdateEvaluation(ctx context.Context, id string, eval models.SupplierEvaluation) error {
	args := m.Called(ctx, id, eval)
	return args.Error(0)
}

func (m *MockEvaluationCollection) DeleteEvaluation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPurchaseOrderCollection struct {
	mock.Mock
}

func (m *MockPurchaseOrderCollection) InsertPurchaseOrder(ctx context.Context, order models.PurchaseOrder) (string, error) {
	args := m.Called(ctx, order)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseOrderCollection) FindPurchaseOrderByID(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.PurchaseOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseOrderCollection) FindPurchaseOrders(ctx context.Context, filter bson.M) ([]models.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if orders, ok := args.Get(0).([]models.PurchaseOrder); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPurchaseOrderCollection) UpdatePurchaseOrder(ctx context.Context, id string, order models.PurchaseOrder) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderCollection) DeletePurchaseOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
