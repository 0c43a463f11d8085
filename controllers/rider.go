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

// RiderController handles rider application requests
type RiderController struct {
	RiderCollection Collection
	UserCollection  Collection
	EmailService    Mailer
}

// NewRiderController creates a new RiderController
func NewRiderController(client *mongo.Client, emailService Mailer) *RiderController {
	db := client.Database(DatabaseName)
	return &RiderController{
		RiderCollection: db.Collection("riders"),
		UserCollection:  db.Collection("users"),
		EmailService:    emailService,
	}
}

// CreateRider submits a rider application. Every application starts pending.
func (rc *RiderController) CreateRider(w http.ResponseWriter, r *http.Request) {
	var rider models.Rider
	err := json.NewDecoder(r.Body).Decode(&rider)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if rider.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	rider.ID = primitive.NilObjectID
	rider.Status = models.RiderStatusPending
	rider.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := rc.RiderCollection.InsertOne(ctx, rider)
	if err != nil {
		http.Error(w, "Error creating rider application: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"insertedId": result.InsertedID,
	})
}

// GetPendingRiders lists pending rider applications, newest first (Admin only)
func (rc *RiderController) GetPendingRiders(w http.ResponseWriter, r *http.Request) {
	rc.listRiders(w, bson.M{"status": models.RiderStatusPending})
}

// GetActiveRiders lists active riders, optionally filtered by district (Admin only)
func (rc *RiderController) GetActiveRiders(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{"status": models.RiderStatusActive}
	if district := r.URL.Query().Get("district"); district != "" {
		filter["district"] = district
	}
	rc.listRiders(w, filter)
}

func (rc *RiderController) listRiders(w http.ResponseWriter, filter bson.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := rc.RiderCollection.Find(ctx, filter, opts)
	if err != nil {
		http.Error(w, "Error fetching riders: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var riders []models.Rider
	for cursor.Next(ctx) {
		var rider models.Rider
		if err := cursor.Decode(&rider); err != nil {
			http.Error(w, "Error decoding rider", http.StatusInternalServerError)
			return
		}
		riders = append(riders, rider)
	}
	if err := cursor.Err(); err != nil {
		http.Error(w, "Cursor error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(riders)
}

// UpdateRiderStatus moves a rider through its lifecycle. Approving an
// application ("active") also promotes the linked user to the rider role
// and notifies the applicant by email.
func (rc *RiderController) UpdateRiderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid rider ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rider models.Rider
	err = rc.RiderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&rider)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Rider not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !models.CanTransitionRider(rider.Status, req.Status) {
		http.Error(w, "Invalid status transition", http.StatusBadRequest)
		return
	}

	result, err := rc.RiderCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": req.Status},
	})
	if err != nil {
		http.Error(w, "Error updating rider: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// An active rider must carry the rider role on their user record
	if req.Status == models.RiderStatusActive && rider.Status == models.RiderStatusPending {
		_, err = rc.UserCollection.UpdateOne(ctx, bson.M{"email": rider.Email}, bson.M{
			"$set": bson.M{"role": models.RoleRider},
		})
		if err != nil {
			http.Error(w, "Error updating user role: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	if rc.EmailService != nil && (req.Status == models.RiderStatusActive || req.Status == models.RiderStatusRejected) {
		go func(email, name, status string) {
			if err := rc.EmailService.SendRiderDecisionEmail(email, name, status); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(rider.Email, rider.Name, req.Status)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Rider status updated",
		"modifiedCount": result.ModifiedCount,
	})
}

// DeleteRider removes a rider application (Admin only)
func (rc *RiderController) DeleteRider(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid rider ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := rc.RiderCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Error deleting rider: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.DeletedCount == 0 {
		http.Error(w, "Rider not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Rider deleted",
	})
}
