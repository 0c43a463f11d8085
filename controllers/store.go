package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseName is the MongoDB database holding all collections
const DatabaseName = "parcelDB"

// Collection is the subset of *mongo.Collection the controllers use.
// Controllers depend on it so tests can swap in an in-memory fake.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

// IntentCreator is the payment-gateway collaborator that starts a card payment
type IntentCreator interface {
	CreateIntent(amount int64) (string, error)
}

// Mailer sends rider notifications. Failures are logged, never surfaced to callers.
type Mailer interface {
	SendRiderDecisionEmail(toEmail, name, status string) error
}
