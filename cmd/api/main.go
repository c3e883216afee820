package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/casereach/intake-api/internal/infra/crypto"
	"github.com/casereach/intake-api/internal/infra/database"
	"github.com/casereach/intake-api/internal/infra/http/handlers"
	"github.com/casereach/intake-api/internal/infra/http/middleware"
	"github.com/casereach/intake-api/internal/infra/integration/captorra"
	"github.com/casereach/intake-api/internal/infra/mail"
	"github.com/casereach/intake-api/internal/infra/queue"
	"github.com/casereach/intake-api/internal/usecase"
)

func main() {
	godotenv.Load()

	// 1. Crypto
	cipher, err := crypto.NewCipherService(os.Getenv("LEAD_ENCRYPTION_KEY"))
	if err != nil {
		log.Fatal(err)
	}
	codec := crypto.NewFieldCodec(cipher)

	// 2. Database
	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	leadRepo := database.NewLeadRepository(db)

	// 3. Outbound collaborators
	crmClient := captorra.NewClient(os.Getenv("CAPTORRA_API_KEY"), os.Getenv("CAPTORRA_URL"))

	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
		os.Getenv("INTAKE_NOTIFY_EMAIL"),
	)

	// 4. CRM sync path: durable queue when RabbitMQ is configured, direct
	// HTTP otherwise. Both are fire-and-forget from the pipeline's side.
	var crmService usecase.CRMService = crmClient
	var rabbitConn *amqp.Connection

	if os.Getenv("RABBITMQ_HOST") != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"),
			os.Getenv("RABBITMQ_PASS"),
			os.Getenv("RABBITMQ_HOST"),
			os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		crmService = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		worker := queue.NewWorker(rabbitMQ.Ch, crmClient)
		go worker.Start(queue.QueueName)
	}

	// 5. UseCases
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, codec, mailSender, crmService)
	adminUC := usecase.NewLeadAdminUseCase(leadRepo, codec)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(submitUC)
	adminHandler := handlers.NewAdminHandler(adminUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://demo.casereach.com", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-API-Key"},
	}))

	r.Post("/leads", leadHandler.Submit)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin/leads", func(r chi.Router) {
		r.Use(middleware.APIKey(os.Getenv("ADMIN_API_KEY")))
		r.Get("/", adminHandler.List)
		r.Get("/{id}", adminHandler.Get)
		r.Patch("/{id}", adminHandler.Update)
		r.Delete("/{id}", adminHandler.Delete)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("🔥 intake API listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)

	// Let in-flight notification branches finish before the process exits.
	submitUC.WaitForNotifications()
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
