package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Ryanmedeirosp/Diet-Daily-app/database"
	"github.com/Ryanmedeirosp/Diet-Daily-app/handlers"
	"github.com/Ryanmedeirosp/Diet-Daily-app/middleware"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; deployments set the
	// environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Initialize database and run migrations
	err := database.InitDB()
	if err != nil {
		log.Fatal(err)
	}

	// Configure the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      newHandler(),
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start the server
	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// newHandler builds the router with CORS wrapped around it rather than
// registered via Use: mux skips its middleware when no route matches the
// method, so OPTIONS preflights would otherwise never see the CORS
// headers.
func newHandler() http.Handler {
	r := mux.NewRouter()

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter)

	return middleware.EnableCORS(r)
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Bootstrap writes mint their own session, so they sit outside the
	// session-guarded groups
	r.HandleFunc("/user", handlers.CreateUser).Methods("POST")
	r.HandleFunc("/transactions", handlers.CreateTransaction).Methods("POST")

	// Ledger reads accept any presented token as the partition key
	ledgerRouter := r.PathPrefix("/transactions").Subrouter()
	ledgerRouter.Use(middleware.RequireSession)
	ledgerRouter.HandleFunc("", handlers.GetTransactions).Methods("GET")
	ledgerRouter.HandleFunc("/summary", handlers.GetTransactionSummary).Methods("GET")
	ledgerRouter.HandleFunc("/{id}", handlers.GetTransaction).Methods("GET")

	// Meal routes require a registered account behind the cookie
	mealRouter := r.PathPrefix("/meals").Subrouter()
	mealRouter.Use(middleware.RequireUser)
	mealRouter.HandleFunc("", handlers.CreateMeal).Methods("POST")
	mealRouter.HandleFunc("", handlers.GetMeals).Methods("GET")
	mealRouter.HandleFunc("/summary", handlers.GetMealSummary).Methods("GET")
	mealRouter.HandleFunc("/{id}", handlers.GetMeal).Methods("GET")
	mealRouter.HandleFunc("/{id}", handlers.UpdateMeal).Methods("PUT")
	mealRouter.HandleFunc("/{id}", handlers.DeleteMeal).Methods("DELETE")
}
