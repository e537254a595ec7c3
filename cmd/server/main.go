package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"ecomove/internal/api"
	"ecomove/internal/auth"
	"ecomove/internal/metrics"
	"ecomove/internal/repository"
	"ecomove/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userRepo := repository.NewUserRepository(db)
	stationRepo := repository.NewStationRepository(db)
	transportRepo := repository.NewTransportRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	senderSvc := service.NewSenderService(userRepo, stationRepo)
	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	stationSvc := service.NewStationService(stationRepo)
	transportSvc := service.NewTransportService(transportRepo)
	loanSvc := service.NewLoanService(transportRepo, stationRepo, loanRepo, senderSvc)
	historySvc := service.NewHistoryService(userRepo, transportRepo, stationRepo, loanRepo)
	stripeSvc := service.NewStripeService()
	paymentSvc := service.NewPaymentService(paymentRepo, stripeSvc, loanSvc)
	geocodeSvc := service.NewGeocodeService(os.Getenv("GEOCODE_BASE_URL"), 10*time.Second)
	jobSvc := service.NewJobService(loanRepo, loanSvc, paymentRepo)

	authHandler := api.NewAuthHandler(authSvc)
	userHandler := api.NewUserHandler(userSvc)
	stationHandler := api.NewStationHandler(stationSvc)
	transportHandler := api.NewTransportHandler(transportSvc)
	loanHandler := api.NewLoanHandler(loanSvc, historySvc)
	paymentHandler := api.NewPaymentHandler(paymentSvc)
	webhookHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), paymentSvc, stripeSvc)
	geocodeHandler := api.NewGeocodeHandler(geocodeSvc)

	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Endpoints públicos
	r.HandleFunc("/api/usuarios/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/usuarios", userHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/stripe/webhook", webhookHandler.HandleWebhook).Methods("POST")

	// Endpoints protegidos
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.AuthMiddleware)

	apiRouter.HandleFunc("/usuarios", userHandler.ListUsers).Methods("GET")
	apiRouter.HandleFunc("/usuarios/{id}", userHandler.GetUser).Methods("GET")
	apiRouter.HandleFunc("/usuarios/{id}", userHandler.UpdateUser).Methods("PUT")
	apiRouter.HandleFunc("/usuarios/{id}", userHandler.DeleteUser).Methods("DELETE")

	apiRouter.HandleFunc("/estaciones", stationHandler.CreateStation).Methods("POST")
	apiRouter.HandleFunc("/estaciones", stationHandler.ListStations).Methods("GET")
	apiRouter.HandleFunc("/estaciones/{id}", stationHandler.GetStation).Methods("GET")
	apiRouter.HandleFunc("/estaciones/{id}", stationHandler.UpdateStation).Methods("PUT")
	apiRouter.HandleFunc("/estaciones/{id}", stationHandler.DeleteStation).Methods("DELETE")

	apiRouter.HandleFunc("/transportes", transportHandler.CreateTransport).Methods("POST")
	apiRouter.HandleFunc("/transportes", transportHandler.ListTransports).Methods("GET")
	apiRouter.HandleFunc("/transportes/{id}", transportHandler.GetTransport).Methods("GET")
	apiRouter.HandleFunc("/transportes/{id}", transportHandler.UpdateTransport).Methods("PUT")
	apiRouter.HandleFunc("/transportes/{id}", transportHandler.DeleteTransport).Methods("DELETE")

	apiRouter.HandleFunc("/prestamos", loanHandler.CreateLoan).Methods("POST")
	apiRouter.HandleFunc("/prestamos/historial", loanHandler.GetHistory).Methods("GET")
	apiRouter.HandleFunc("/prestamos/usuario/{usuarioId}", loanHandler.ListLoansByUser).Methods("GET")
	apiRouter.HandleFunc("/prestamos/{id}", loanHandler.GetLoan).Methods("GET")
	apiRouter.HandleFunc("/prestamos/{id}/finalizar", loanHandler.FinishLoan).Methods("PUT")

	apiRouter.HandleFunc("/pagos", paymentHandler.ListPayments).Methods("GET")
	apiRouter.HandleFunc("/pagos/resumen", paymentHandler.GetPaymentsSummary).Methods("GET")
	apiRouter.HandleFunc("/pagos/{id}", paymentHandler.GetPayment).Methods("GET")
	apiRouter.HandleFunc("/pago-online/stripe/checkout", paymentHandler.CreateCheckoutSession).Methods("POST")
	apiRouter.HandleFunc("/pago-online/stripe/session-status", paymentHandler.GetSessionStatus).Methods("GET")

	apiRouter.HandleFunc("/geocode", geocodeHandler.Geocode).Methods("GET")

	// Cierra préstamos vencidos y purga checkouts abandonados
	c := cron.New()
	c.AddFunc("@every 5m", jobSvc.FinishOverdueLoans)
	c.AddFunc("@hourly", jobSvc.PurgeStalePendingLoans)
	c.Start()
	defer c.Stop()

	corsOrigin := os.Getenv("CORS_ALLOWED_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{corsOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
