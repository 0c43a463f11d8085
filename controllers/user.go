package controllers

import (
	"context"
	"encoding/json"
	"fastfare/models"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserController handles user-related requests
type UserController struct {
	Collection Collection
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client) *UserController {
	return &UserController{
		Collection: client.Database(DatabaseName).Collection("users"),
	}
}

// LoginUpsert creates a user on first login or refreshes last_log_in on
// subsequent logins. Calling it twice with the same email never creates
// two documents.
func (uc *UserController) LoginUpsert(w http.ResponseWriter, r *http.Request) {
	var user models.User
	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if user.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err = uc.Collection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&existing)
	if err == nil {
		// Update last log in
		result, err := uc.Collection.UpdateOne(ctx, bson.M{"email": user.Email}, bson.M{
			"$set": bson.M{"last_log_in": time.Now()},
		})
		if err != nil {
			http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":  "user already exists",
			"inserted": false,
			"update":   result.ModifiedCount > 0,
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Roles are granted by admins and rider approval, never self-provisioned
	user.ID = primitive.NilObjectID
	user.Role = models.RoleUser
	user.CreatedAt = time.Now()
	user.LastLogIn = user.CreatedAt

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		http.Error(w, "Error creating user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"inserted":   true,
		"insertedId": result.InsertedID,
	})
}

// SearchUsers performs a partial case-insensitive email search, limited to 10 results
func (uc *UserController) SearchUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("email")
	if query == "" {
		http.Error(w, "Missing email query", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter := bson.M{"email": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	cursor, err := uc.Collection.Find(ctx, filter, options.Find().SetLimit(10))
	if err != nil {
		http.Error(w, "Error searching users: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			http.Error(w, "Error decoding user", http.StatusInternalServerError)
			return
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		http.Error(w, "Cursor error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// GetUserRole retrieves the role for one email
func (uc *UserController) GetUserRole(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email query", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"email": user.Email,
		"role":  user.Role,
	})
}

// UpdateUserRole sets a user's role (Admin only). Only "admin" and "user"
// may be assigned here; the "rider" role is granted by rider approval.
func (uc *UserController) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var roleUpdate struct {
		Role string `json:"role"`
	}
	err = json.NewDecoder(r.Body).Decode(&roleUpdate)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if roleUpdate.Role != models.RoleAdmin && roleUpdate.Role != models.RoleUser {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := uc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": roleUpdate.Role},
	})
	if err != nil {
		http.Error(w, "Error updating role: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":       "Role updated successfully",
		"modifiedCount": result.ModifiedCount,
	})
}
