package services

import (
	"encoding/json"
	"log"
	"time"

	"littlelemon/internal/models"
	"littlelemon/pkg/rabbitmq"

	"github.com/google/uuid"
)

// Order event types, also used as routing keys.
const (
	EventOrderPlaced  = "order.placed"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// EventPublisher sends a message to an exchange. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderEventItem is one order line inside an OrderEvent.
type OrderEventItem struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// OrderEvent is the message published whenever an order changes.
type OrderEvent struct {
	ID             string             `json:"id"`
	Type           string             `json:"type"`
	OrderID        uint               `json:"order_id"`
	UserID         uint               `json:"user_id"`
	DeliveryCrewID *uint              `json:"delivery_crew_id"`
	Status         models.OrderStatus `json:"status"`
	Items          []OrderEventItem   `json:"items,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

func newOrderEvent(eventType string, order *models.Order) OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, OrderEventItem{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}
	return OrderEvent{
		ID:             uuid.New().String(),
		Type:           eventType,
		OrderID:        order.ID,
		UserID:         order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Status:         order.Status,
		Items:          items,
		OccurredAt:     time.Now().UTC(),
	}
}

// publishOrderEvent is best effort: failures are logged and never reach the caller.
func publishOrderEvent(publisher EventPublisher, eventType string, order *models.Order) {
	if publisher == nil {
		return
	}
	body, err := json.Marshal(newOrderEvent(eventType, order))
	if err != nil {
		log.Printf("Failed to marshal %s event for order %d: %v", eventType, order.ID, err)
		return
	}
	if err := publisher.Publish(rabbitmq.OrderExchange, eventType, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for order %d: %v", eventType, order.ID, err)
	}
}
