package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery statuses
const (
	DeliveryStatusNotCollected = "not_collected"
	DeliveryStatusAssigned     = "assigned"
	DeliveryStatusInTransit    = "in_transit"
	DeliveryStatusDelivered    = "delivered"
)

// Payment statuses
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Parcel represents a delivery booking
type Parcel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title           string             `bson:"title" json:"title"`
	Type            string             `bson:"type" json:"type"` // "document" or "non-document"
	Weight          float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	SenderName      string             `bson:"sender_name" json:"sender_name"`
	SenderRegion    string             `bson:"sender_region" json:"sender_region"`
	SenderAddress   string             `bson:"sender_address" json:"sender_address"`
	ReceiverName    string             `bson:"receiver_name" json:"receiver_name"`
	ReceiverRegion  string             `bson:"receiver_region" json:"receiver_region"`
	ReceiverAddress string             `bson:"receiver_address" json:"receiver_address"`
	Cost            float64            `bson:"cost" json:"cost"`
	CreatedBy       string             `bson:"created_by" json:"created_by"`
	DeliveryStatus  string             `bson:"delivery_status" json:"delivery_status"`
	PaymentStatus   string             `bson:"payment_status" json:"payment_status"`
	AssignedTo      string             `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
