package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rider statuses
const (
	RiderStatusPending    = "pending"
	RiderStatusActive     = "active"
	RiderStatusRejected   = "rejected"
	RiderStatusOnDelivery = "on_delivery"
)

// Allowed rider status transitions. A rejected application is terminal.
var riderTransitions = map[string][]string{
	RiderStatusPending:    {RiderStatusActive, RiderStatusRejected},
	RiderStatusActive:     {RiderStatusOnDelivery},
	RiderStatusOnDelivery: {RiderStatusActive},
}

// CanTransitionRider reports whether a rider may move from one status to another.
func CanTransitionRider(from, to string) bool {
	for _, next := range riderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Rider represents a rider application and its lifecycle
type Rider struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	District  string             `bson:"district" json:"district"`
	Region    string             `bson:"region,omitempty" json:"region,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
