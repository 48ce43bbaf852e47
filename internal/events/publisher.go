// Package events provides NATS event publishing for backoffice-service
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	SubjectImportCompleted = "backoffice.import.completed"
	SubjectStockLow        = "backoffice.stock.low"
)

// Publisher publishes back-office events to NATS. A nil Publisher is valid
// and drops events silently, so the service runs without a broker.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. Callers treat a connection failure as
// non-fatal and run with a nil publisher.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	if natsURL == "" {
		return nil, fmt.Errorf("NATS URL is required")
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("backoffice-service-publisher"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events.publisher"),
	}, nil
}

// ImportCompletedEvent announces a finished bulk import
type ImportCompletedEvent struct {
	TenantID    string    `json:"tenantId"`
	Entity      string    `json:"entity"`
	TotalRows   int       `json:"totalRows"`
	Inserted    int       `json:"inserted"`
	Duplicates  int       `json:"duplicates"`
	StockErrors int       `json:"stockErrors"`
	Failed      int       `json:"failed"`
	CompletedAt time.Time `json:"completedAt"`
}

// LowStockEvent announces a variant at or below its threshold
type LowStockEvent struct {
	TenantID     string `json:"tenantId"`
	VariantID    string `json:"variantId"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	Threshold    int    `json:"threshold"`
}

// PublishImportCompleted publishes a backoffice.import.completed event
func (p *Publisher) PublishImportCompleted(event ImportCompletedEvent) {
	if p == nil {
		return
	}
	event.CompletedAt = time.Now().UTC()
	if err := p.publish(SubjectImportCompleted, event); err != nil {
		p.logger.WithFields(logrus.Fields{
			"tenantId": event.TenantID,
			"entity":   event.Entity,
		}).WithError(err).Error("Failed to publish import.completed event")
		return
	}
	p.logger.WithFields(logrus.Fields{
		"tenantId": event.TenantID,
		"entity":   event.Entity,
		"inserted": event.Inserted,
	}).Info("Published import.completed event")
}

// PublishLowStock publishes a backoffice.stock.low event
func (p *Publisher) PublishLowStock(event LowStockEvent) {
	if p == nil {
		return
	}
	if err := p.publish(SubjectStockLow, event); err != nil {
		p.logger.WithFields(logrus.Fields{
			"tenantId": event.TenantID,
			"sku":      event.SKU,
		}).WithError(err).Error("Failed to publish stock.low event")
		return
	}
	p.logger.WithFields(logrus.Fields{
		"tenantId":     event.TenantID,
		"sku":          event.SKU,
		"currentStock": event.CurrentStock,
	}).Info("Published stock.low event")
}

func (p *Publisher) publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.conn.Publish(subject, data)
}

// IsConnected returns true if connected to NATS
func (p *Publisher) IsConnected() bool {
	return p != nil && p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
