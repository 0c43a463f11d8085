package controllers

import (
	"context"
	"encoding/json"
	"fastfare/middleware"
	"fastfare/models"
	"fastfare/utils"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ParcelController handles parcel-related requests
type ParcelController struct {
	ParcelCollection Collection
	RiderCollection  Collection
}

// NewParcelController creates a new ParcelController
func NewParcelController(client *mongo.Client) *ParcelController {
	db := client.Database(DatabaseName)
	return &ParcelController{
		ParcelCollection: db.Collection("parcels"),
		RiderCollection:  db.Collection("riders"),
	}
}

// GetParcels lists parcels, newest first, optionally filtered by owner email,
// delivery status and payment status
func (pc *ParcelController) GetParcels(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if email := r.URL.Query().Get("email"); email != "" {
		filter["created_by"] = email
	}
	if status := r.URL.Query().Get("delivery_status"); status != "" {
		filter["delivery_status"] = status
	}
	if status := r.URL.Query().Get("payment_status"); status != "" {
		filter["payment_status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := pc.ParcelCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Error fetching parcels: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var parcels []models.Parcel
	for cursor.Next(ctx) {
		var parcel models.Parcel
		if err := cursor.Decode(&parcel); err != nil {
			http.Error(w, "Error decoding parcel", http.StatusInternalServerError)
			return
		}
		parcels = append(parcels, parcel)
	}
	if err := cursor.Err(); err != nil {
		http.Error(w, "Cursor error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(parcels)
}

// GetParcelByID retrieves a single parcel by ID
func (pc *ParcelController) GetParcelByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var parcel models.Parcel
	err = pc.ParcelCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&parcel)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Parcel not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    parcel,
	})
}

// CreateParcel creates a new parcel booking. The owner is always the
// authenticated caller, and a new parcel starts unpaid and not collected.
func (pc *ParcelController) CreateParcel(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var parcel models.Parcel
	err := json.NewDecoder(r.Body).Decode(&parcel)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	parcel.ID = primitive.NilObjectID
	parcel.CreatedBy = claims.Email
	parcel.DeliveryStatus = models.DeliveryStatusNotCollected
	parcel.PaymentStatus = models.PaymentStatusUnpaid
	parcel.AssignedTo = ""
	parcel.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.ParcelCollection.InsertOne(ctx, parcel)
	if err != nil {
		http.Error(w, "Failed to create parcel: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"insertedId": result.InsertedID,
	})
}

// DeleteParcel deletes a parcel by ID
func (pc *ParcelController) DeleteParcel(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.ParcelCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Error deleting parcel: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Parcel not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Parcel deleted",
	})
}

// AssignRider assigns a rider to a parcel. Two independent writes: the rider
// goes on delivery (only matched while active) and the parcel records the
// assignment. Neither write is rolled back if the other fails; both outcomes
// are reported.
func (pc *ParcelController) AssignRider(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
		return
	}

	var req struct {
		RiderEmail string `json:"riderEmail"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RiderEmail == "" {
		http.Error(w, "riderEmail is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	riderModified := int64(0)
	riderResult, riderErr := pc.RiderCollection.UpdateOne(ctx,
		bson.M{"email": req.RiderEmail, "status": models.RiderStatusActive},
		bson.M{"$set": bson.M{"status": models.RiderStatusOnDelivery}},
	)
	if riderErr == nil {
		riderModified = riderResult.ModifiedCount
	}

	parcelModified := int64(0)
	parcelResult, parcelErr := pc.ParcelCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"assigned_to":     req.RiderEmail,
			"delivery_status": models.DeliveryStatusAssigned,
		}},
	)
	if parcelErr == nil {
		parcelModified = parcelResult.ModifiedCount
	}

	if riderErr != nil && parcelErr != nil {
		http.Error(w, "Failed to assign rider: "+parcelErr.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":        "Rider assigned",
		"riderModified":  riderModified,
		"parcelModified": parcelModified,
	})
}
