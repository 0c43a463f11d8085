package controllers

import (
	"context"
	"encoding/json"
	"fastfare/models"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentController handles the payment ledger and the gateway bridge
type PaymentController struct {
	PaymentCollection Collection
	ParcelCollection  Collection
	Gateway           IntentCreator
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(client *mongo.Client, gateway IntentCreator) *PaymentController {
	db := client.Database(DatabaseName)
	return &PaymentController{
		PaymentCollection: db.Collection("payments"),
		ParcelCollection:  db.Collection("parcels"),
		Gateway:           gateway,
	}
}

// GetUserPayments retrieves the payment history for one user, newest first
func (pc *PaymentController) GetUserPayments(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	pc.listPayments(w, bson.M{"userEmail": params["email"]})
}

// GetAllPayments retrieves the full payment ledger, newest first
func (pc *PaymentController) GetAllPayments(w http.ResponseWriter, r *http.Request) {
	pc.listPayments(w, bson.M{})
}

func (pc *PaymentController) listPayments(w http.ResponseWriter, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cursor, err := pc.PaymentCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Could not fetch payment history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	for cursor.Next(ctx) {
		var payment models.Payment
		if err := cursor.Decode(&payment); err != nil {
			http.Error(w, "Error decoding payment", http.StatusInternalServerError)
			return
		}
		payments = append(payments, payment)
	}
	if err := cursor.Err(); err != nil {
		http.Error(w, "Cursor error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

// CreatePaymentIntent asks the payment gateway for a card payment intent
// and returns its client secret
func (pc *PaymentController) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int64 `json:"amount"` // in cents
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	clientSecret, err := pc.Gateway.CreateIntent(req.Amount)
	if err != nil {
		http.Error(w, "Failed to create payment intent: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"clientSecret": clientSecret,
	})
}

// MarkParcelPaid flips a parcel to paid and appends a ledger entry. The flip
// is filtered on the unpaid status so it can happen at most once. The two
// writes are not transactional; a ledger insert failure after a successful
// flip is logged and surfaced as a server error.
func (pc *PaymentController) MarkParcelPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ParcelID      string  `json:"parcelId"`
		UserEmail     string  `json:"userEmail"`
		Amount        float64 `json:"amount"`
		TransactionID string  `json:"transactionId"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ParcelID == "" || req.UserEmail == "" || req.TransactionID == "" || req.Amount <= 0 {
		http.Error(w, "parcelId, userEmail, amount and transactionId are required", http.StatusBadRequest)
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ParcelID)
	if err != nil {
		http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.ParcelCollection.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": models.PaymentStatusUnpaid},
		bson.M{"$set": bson.M{"payment_status": models.PaymentStatusPaid}},
	)
	if err != nil {
		http.Error(w, "Payment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		err = pc.ParcelCollection.FindOne(ctx, bson.M{"_id": id}).Err()
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Parcel not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Payment failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "Parcel already paid", http.StatusBadRequest)
		return
	}

	payment := models.Payment{
		ParcelID:      req.ParcelID,
		UserEmail:     req.UserEmail,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaidAt:        time.Now(),
	}

	insertResult, err := pc.PaymentCollection.InsertOne(ctx, payment)
	if err != nil {
		// The parcel is already marked paid; the ledger entry is missing
		log.Printf("Payment ledger insert failed for parcel %s: %v", req.ParcelID, err)
		http.Error(w, "Payment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Payment saved",
		"paymentId": insertResult.InsertedID,
	})
}
