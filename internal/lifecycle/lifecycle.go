package lifecycle

import (
	"errors"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid service status transition")
	ErrNotCompleted      = errors.New("service is not completed")
	ErrNotDelivered      = errors.New("service is not delivered")
)

// CanAdvance reports whether Advance accepts a transition from one status to
// another. DELIVERED is never a valid target here; it is reached only through
// OnDeliveryOrderCreated.
func CanAdvance(from, to models.ServiceStatus) bool {
	switch {
	case from == models.ServicePending && to == models.ServiceInProgress:
		return true
	case from == models.ServiceInProgress && to == models.ServiceCompleted:
		return true
	case to == models.ServiceCancelled && !from.Terminal():
		return true
	default:
		return false
	}
}

// Advance moves a service to the target status. On an illegal transition the
// service is left untouched and ErrInvalidTransition is returned. Reaching
// IN_PROGRESS stamps the start date; reaching COMPLETED stamps the end date
// and derives the warranty expiry from the maintenance type.
func Advance(svc *models.Service, target models.ServiceStatus) error {
	if !CanAdvance(svc.Status, target) {
		return ErrInvalidTransition
	}

	now := time.Now()
	switch target {
	case models.ServiceInProgress:
		if svc.StartDate == nil {
			svc.StartDate = &now
		}
	case models.ServiceCompleted:
		svc.EndDate = &now
		warranty := now.Add(svc.MaintenanceType.WarrantyPeriod())
		svc.WarrantyUntil = &warranty
	}
	svc.Status = target
	svc.UpdatedAt = now
	return nil
}

// OnDeliveryOrderCreated records the handover of the vehicle: the service
// must be COMPLETED and becomes DELIVERED. When this fails the caller must
// not consider the delivery order created.
func OnDeliveryOrderCreated(svc *models.Service) error {
	if svc.Status != models.ServiceCompleted {
		return ErrNotCompleted
	}
	svc.Status = models.ServiceDelivered
	svc.UpdatedAt = time.Now()
	return nil
}

// OnDeliveryOrderDeleted reverts the handover: the service must be DELIVERED
// and returns to COMPLETED, never to an earlier state. A service already in
// COMPLETED signals an inconsistent caller and is reported as an error.
func OnDeliveryOrderDeleted(svc *models.Service) error {
	if svc.Status != models.ServiceDelivered {
		return ErrNotDelivered
	}
	svc.Status = models.ServiceCompleted
	svc.UpdatedAt = time.Now()
	return nil
}
