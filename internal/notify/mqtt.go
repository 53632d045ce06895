package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
)

// StatusTopic is where service status change events are published.
const StatusTopic = "carmotors/services/status"

// StatusEvent is the payload published when a service changes status.
type StatusEvent struct {
	ServiceID      string               `json:"service_id"`
	PreviousStatus models.ServiceStatus `json:"previous_status"`
	NewStatus      models.ServiceStatus `json:"new_status"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

// StatusPublisher announces service status changes to interested consumers
// (reception displays, customer notification bridges).
type StatusPublisher interface {
	PublishStatusChange(serviceID string, from, to models.ServiceStatus) error
}

// MQTTPublisher publishes status events to an MQTT broker.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker at the given URL.
func NewMQTTPublisher(brokerURL string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(fmt.Sprintf("carmotors-backend-%d", time.Now().UnixNano())).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishStatusChange publishes a status event for a service.
func (p *MQTTPublisher) PublishStatusChange(serviceID string, from, to models.ServiceStatus) error {
	event := StatusEvent{
		ServiceID:      serviceID,
		PreviousStatus: from,
		NewStatus:      to,
		OccurredAt:     time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}
	token := p.client.Publish(StatusTopic, 1, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish error: %w", err)
	}
	log.WithFields(log.Fields{
		"service_id": serviceID,
		"from":       from,
		"to":         to,
	}).Debug("Published status event")
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NopPublisher discards status events. Used when no broker is configured.
type NopPublisher struct{}

// PublishStatusChange does nothing.
func (NopPublisher) PublishStatusChange(string, models.ServiceStatus, models.ServiceStatus) error {
	return nil
}
