package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only ledger entry for a completed parcel payment
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}
