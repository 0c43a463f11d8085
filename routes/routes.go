package routes

import (
	"fastfare/controllers"
	"fastfare/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	parcelController *controllers.ParcelController,
	riderController *controllers.RiderController,
	paymentController *controllers.PaymentController,
	trackingController *controllers.TrackingController,
	adminOnly mux.MiddlewareFunc,
) {
	// Public routes
	router.HandleFunc("/", home).Methods("GET")
	router.HandleFunc("/users", userController.LoginUpsert).Methods("POST")
	router.HandleFunc("/users/search", userController.SearchUsers).Methods("GET")
	router.HandleFunc("/users/role", userController.GetUserRole).Methods("GET")
	router.HandleFunc("/riders", riderController.CreateRider).Methods("POST")
	router.HandleFunc("/riders/{id}", riderController.UpdateRiderStatus).Methods("PATCH")
	router.HandleFunc("/parcels/assignRider/{id}", parcelController.AssignRider).Methods("PATCH")
	router.HandleFunc("/tracking", trackingController.CreateTrackingLog).Methods("POST")
	router.HandleFunc("/create-payment-intent", paymentController.CreatePaymentIntent).Methods("POST")

	// Routes that require a verified token
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.Handle("/parcels", middleware.OwnEmailMiddleware(http.HandlerFunc(parcelController.GetParcels))).Methods("GET")
	protected.HandleFunc("/parcels", parcelController.CreateParcel).Methods("POST")
	protected.HandleFunc("/parcels/{id}", parcelController.GetParcelByID).Methods("GET")
	protected.HandleFunc("/parcels/{id}", parcelController.DeleteParcel).Methods("DELETE")
	protected.Handle("/payments/user/{email}", middleware.OwnEmailMiddleware(http.HandlerFunc(paymentController.GetUserPayments))).Methods("GET")
	protected.HandleFunc("/payments", paymentController.GetAllPayments).Methods("GET")
	protected.HandleFunc("/payments", paymentController.MarkParcelPaid).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(adminOnly)
	admin.HandleFunc("/users/{id}/role", userController.UpdateUserRole).Methods("PATCH")
	admin.HandleFunc("/pending", riderController.GetPendingRiders).Methods("GET")
	admin.HandleFunc("/riders/active", riderController.GetActiveRiders).Methods("GET")
	admin.HandleFunc("/riders/{id}", riderController.DeleteRider).Methods("DELETE")
}

func home(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("FastFare Server is running..."))
}
