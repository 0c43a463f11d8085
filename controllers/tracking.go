package controllers

import (
	"context"
	"encoding/json"
	"fastfare/models"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TrackingController handles parcel tracking logs
type TrackingController struct {
	Collection Collection
}

// NewTrackingController creates a new TrackingController
func NewTrackingController(client *mongo.Client) *TrackingController {
	return &TrackingController{
		Collection: client.Database(DatabaseName).Collection("tracking"),
	}
}

// CreateTrackingLog appends an audit entry for a parcel with a server-assigned time
func (tc *TrackingController) CreateTrackingLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackingID string `json:"tracking_id"`
		ParcelID   string `json:"parcel_id"`
		Status     string `json:"status"`
		Message    string `json:"message"`
		UpdatedBy  string `json:"updated_by"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	logEntry := models.TrackingLog{
		TrackingID: req.TrackingID,
		Status:     req.Status,
		Message:    req.Message,
		Time:       time.Now(),
		UpdatedBy:  req.UpdatedBy,
	}
	if req.ParcelID != "" {
		parcelID, err := primitive.ObjectIDFromHex(req.ParcelID)
		if err != nil {
			http.Error(w, "Invalid parcel ID", http.StatusBadRequest)
			return
		}
		logEntry.ParcelID = &parcelID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := tc.Collection.InsertOne(ctx, logEntry)
	if err != nil {
		http.Error(w, "Error creating tracking log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"insertedId": result.InsertedID,
	})
}
