// main.go
package main

import (
	"context"
	"fastfare/controllers"
	"fastfare/middleware"
	"fastfare/routes"
	"fastfare/utils"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set in environment variables")
	}
	utils.JwtKey = []byte(jwtSecret)

	// Initialize external collaborators
	emailService := utils.NewEmailService()
	gateway := utils.NewStripeGateway(os.Getenv("PAYMENT_GATEWAY_KEY"))

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	userController := controllers.NewUserController(client)
	parcelController := controllers.NewParcelController(client)
	riderController := controllers.NewRiderController(client, emailService)
	paymentController := controllers.NewPaymentController(client, gateway)
	trackingController := controllers.NewTrackingController(client)

	adminOnly := middleware.NewAdminMiddleware(client.Database(controllers.DatabaseName).Collection("users"))

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, parcelController, riderController, paymentController, trackingController, adminOnly)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
