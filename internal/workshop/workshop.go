package workshop

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/billing"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/db"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/lifecycle"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/notify"
)

var (
	ErrServiceNotFound     = errors.New("service not found")
	ErrDeliveryOrderExists = errors.New("service already has a delivery order")
	ErrInsufficientStock   = errors.New("not enough stock for the requested quantity")
)

// Orchestrator coordinates the status transitions of a service with the
// persistence writes they pair with. The delivery order row and the service
// status are one logical unit: neither write is left applied without the
// other.
type Orchestrator struct {
	Services   db.ServiceCollection
	Usage      db.PartUsageCollection
	Deliveries db.DeliveryOrderCollection
	Parts      db.PartCollection
	Publisher  notify.StatusPublisher
}

// New creates an orchestrator. A nil publisher disables event announcements.
func New(services db.ServiceCollection, usage db.PartUsageCollection, deliveries db.DeliveryOrderCollection, parts db.PartCollection, publisher notify.StatusPublisher) *Orchestrator {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Orchestrator{
		Services:   services,
		Usage:      usage,
		Deliveries: deliveries,
		Parts:      parts,
		Publisher:  publisher,
	}
}

// AdvanceService applies a status transition to a stored service and
// persists it. The stored record is unchanged when the transition is illegal.
func (o *Orchestrator) AdvanceService(ctx context.Context, serviceID string, target models.ServiceStatus) (*models.Service, error) {
	svc, err := o.Services.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	previous := svc.Status
	if err := lifecycle.Advance(svc, target); err != nil {
		return nil, err
	}
	if err := o.Services.UpdateService(ctx, serviceID, *svc); err != nil {
		return nil, err
	}
	o.announce(serviceID, previous, svc.Status)
	return svc, nil
}

// CreateDeliveryOrder hands the vehicle back to the customer: the service
// flips from COMPLETED to DELIVERED and the delivery order is stored. When
// the order insert fails the status change is rolled back, so the order is
// never considered created with the service left in an earlier state.
func (o *Orchestrator) CreateDeliveryOrder(ctx context.Context, order models.DeliveryOrder) (*models.DeliveryOrder, error) {
	svc, err := o.Services.FindServiceByID(ctx, order.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, order.ServiceID)
	}
	if existing, err := o.Deliveries.FindDeliveryOrderByService(ctx, order.ServiceID); err == nil && existing != nil {
		return nil, ErrDeliveryOrderExists
	}

	previous := svc.Status
	if err := lifecycle.OnDeliveryOrderCreated(svc); err != nil {
		return nil, err
	}
	if err := o.Services.UpdateService(ctx, order.ServiceID, *svc); err != nil {
		return nil, fmt.Errorf("failed to persist service status: %w", err)
	}

	id, err := o.Deliveries.InsertDeliveryOrder(ctx, order)
	if err != nil {
		// Undo the status write so the service does not dangle in DELIVERED.
		svc.Status = previous
		if rbErr := o.Services.UpdateService(ctx, order.ServiceID, *svc); rbErr != nil {
			log.WithFields(log.Fields{
				"service_id": order.ServiceID,
				"error":      rbErr,
			}).Error("Failed to roll back service status after delivery order insert failure")
		}
		return nil, fmt.Errorf("failed to insert delivery order: %w", err)
	}

	o.announce(order.ServiceID, previous, svc.Status)

	created, err := o.Deliveries.FindDeliveryOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteDeliveryOrder reverts a handover: the delivery order is removed and
// the service returns from DELIVERED to COMPLETED, never to an earlier
// state. A service not in DELIVERED signals an inconsistent caller.
func (o *Orchestrator) DeleteDeliveryOrder(ctx context.Context, orderID string) error {
	order, err := o.Deliveries.FindDeliveryOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	svc, err := o.Services.FindServiceByID(ctx, order.ServiceID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, order.ServiceID)
	}

	previous := svc.Status
	if err := lifecycle.OnDeliveryOrderDeleted(svc); err != nil {
		return err
	}
	if err := o.Services.UpdateService(ctx, order.ServiceID, *svc); err != nil {
		return fmt.Errorf("failed to persist service status: %w", err)
	}

	if err := o.Deliveries.DeleteDeliveryOrder(ctx, orderID); err != nil {
		svc.Status = previous
		if rbErr := o.Services.UpdateService(ctx, order.ServiceID, *svc); rbErr != nil {
			log.WithFields(log.Fields{
				"service_id": order.ServiceID,
				"error":      rbErr,
			}).Error("Failed to roll back service status after delivery order delete failure")
		}
		return fmt.Errorf("failed to delete delivery order: %w", err)
	}

	o.announce(order.ServiceID, previous, svc.Status)
	return nil
}

// ServiceInvoice derives the invoice for a service from its labor cost and
// recorded part usage.
func (o *Orchestrator) ServiceInvoice(ctx context.Context, serviceID string) (models.Invoice, error) {
	svc, err := o.Services.FindServiceByID(ctx, serviceID)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	usage, err := o.Usage.FindUsageByService(ctx, serviceID)
	if err != nil {
		return models.Invoice{}, err
	}
	return billing.InvoiceForUsage(svc.LaborCost, usage)
}

// RecordPartUsage consumes stock for a service: the usage line is derived
// and stored, and the part's stock level is decremented.
func (o *Orchestrator) RecordPartUsage(ctx context.Context, serviceID, partID string, quantity int) (*models.PartUsage, error) {
	if _, err := o.Services.FindServiceByID(ctx, serviceID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	part, err := o.Parts.FindPartByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part.QuantityInStock < quantity {
		return nil, ErrInsufficientStock
	}

	usage, err := models.NewPartUsage(serviceID, partID, quantity, part.UnitPrice)
	if err != nil {
		return nil, err
	}
	if err := o.Usage.InsertPartUsage(ctx, *usage); err != nil {
		return nil, fmt.Errorf("failed to insert part usage: %w", err)
	}

	part.QuantityInStock -= quantity
	if err := o.Parts.UpdatePart(ctx, partID, *part); err != nil {
		return nil, fmt.Errorf("failed to update part stock: %w", err)
	}
	if part.LowStock() {
		log.WithFields(log.Fields{
			"part_id": partID,
			"stock":   part.QuantityInStock,
			"minimum": part.MinimumStock,
		}).Warn("Part fell to or below its reorder threshold")
	}
	return usage, nil
}

func (o *Orchestrator) announce(serviceID string, from, to models.ServiceStatus) {
	if err := o.Publisher.PublishStatusChange(serviceID, from, to); err != nil {
		log.WithFields(log.Fields{
			"service_id": serviceID,
			"error":      err,
		}).Warn("Failed to publish status event")
	}
}
