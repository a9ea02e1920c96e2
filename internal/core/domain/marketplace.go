package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
var validOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderInProgress, OrderCancelled},
	OrderInProgress: {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderCompleted},
}

var ErrServiceNotFound = errors.New("service not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Service is a digital service offered by a seller. Only the seller
// reference matters to the authorization core; the remaining fields are
// pass-through content.
type Service struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	Title       string    `json:"title"`
	TitleAr     string    `json:"title_ar"`
	Description string    `json:"description"`
	PriceSAR    float64   `json:"price_sar"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order is a purchase of a service by a buyer. It carries both owning
// references: the buyer who placed it and the seller fulfilling it.
type Order struct {
	ID           string      `json:"id"`
	ServiceID    string      `json:"service_id"`
	BuyerID      string      `json:"buyer_id"`
	SellerID     string      `json:"seller_id"`
	Status       OrderStatus `json:"status"`
	AmountSAR    float64     `json:"amount_sar"`
	PaymentProof string      `json:"payment_proof,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
