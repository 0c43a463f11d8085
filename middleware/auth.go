package middleware

import (
	"context"
	"fastfare/models"
	"fastfare/utils"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// UserFinder is the slice of the users collection the admin guard needs.
// Satisfied by *mongo.Collection.
type UserFinder interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]
		claims := &utils.Claims{}

		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return utils.JwtKey, nil
		})

		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		// Attach user information to the request context
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NewAdminMiddleware gates a route on the caller's stored role. The users
// collection is the source of truth, not the role claim inside the token.
func NewAdminMiddleware(users UserFinder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
			if !ok {
				http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			defer cancel()

			var user models.User
			err := users.FindOne(ctx, bson.M{"email": claims.Email}).Decode(&user)
			if err == mongo.ErrNoDocuments {
				http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
				return
			}
			if err != nil {
				http.Error(w, "Database error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if user.Role != models.RoleAdmin {
				http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnEmailMiddleware rejects requests whose email predicate (query param or
// path variable) names someone other than the authenticated caller. An absent
// email passes through.
func OwnEmailMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		email := r.URL.Query().Get("email")
		if email == "" {
			email = mux.Vars(r)["email"]
		}
		if email != "" && email != claims.Email {
			http.Error(w, "Forbidden Access", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
