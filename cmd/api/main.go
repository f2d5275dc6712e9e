package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/financewise/internal/advisor"
	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/analytics"
	"github.com/dvloznov/financewise/internal/api/handlers"
	"github.com/dvloznov/financewise/internal/api/middleware"
	"github.com/dvloznov/financewise/internal/auth"
	"github.com/dvloznov/financewise/internal/config"
	"github.com/dvloznov/financewise/internal/dashboard"
	"github.com/dvloznov/financewise/internal/ingest"
	"github.com/dvloznov/financewise/internal/logger"
	"github.com/dvloznov/financewise/internal/store"
)

func main() {
	// Parse command-line flags
	var (
		port = flag.String("port", "", "HTTP server port (overrides PORT env)")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Connect to MongoDB
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()

	db := client.Database(cfg.DBName)

	// Initialize repositories
	users := store.NewUserRepository(db)
	transactions := store.NewTransactionRepository(db)
	debts := store.NewDebtRepository(db)
	goals := store.NewSavingsGoalRepository(db)
	insights := store.NewInsightRepository(db)

	// Initialize the Gemini client for categorization and insights
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	// Initialize core services
	aggregator := analytics.NewAggregator(transactions)
	adv := advisor.New(transactions, insights, gemini, log)
	composer := dashboard.NewComposer(aggregator, debts, goals, transactions)
	importer := ingest.NewImporter(transactions, gemini, log)
	samples := ingest.NewSampleGenerator(transactions, debts, goals)
	authSvc := auth.NewService(users, transactions, samples, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc, log)
	usersHandler := handlers.NewUsersHandler(users, log)
	transactionsHandler := handlers.NewTransactionsHandler(transactions, gemini, importer, samples, log)
	debtsHandler := handlers.NewDebtsHandler(debts, log)
	savingsHandler := handlers.NewSavingsHandler(goals, aggregator, log)
	analyticsHandler := handlers.NewAnalyticsHandler(aggregator, adv, log)
	dashboardHandler := handlers.NewDashboardHandler(composer, log)

	// Create router
	mux := http.NewServeMux()

	// Auth endpoints
	mux.HandleFunc("/api/auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.SendOTP(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			authHandler.VerifyOTP(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Users endpoints
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			usersHandler.Update(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Transactions endpoints
	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.Create(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/upload-csv/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.UploadCSV(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/mock-sync/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			transactionsHandler.MockSync(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Debts endpoints
	mux.HandleFunc("/api/debts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			debtsHandler.Create(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/debts/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			debtsHandler.List(w, r)
		case http.MethodDelete:
			debtsHandler.Delete(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/debts/analysis/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			debtsHandler.Analyze(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Savings endpoints
	mux.HandleFunc("/api/savings", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			savingsHandler.Create(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/savings/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			savingsHandler.List(w, r)
		case http.MethodDelete:
			savingsHandler.Delete(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/savings/contribute", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			savingsHandler.Contribute(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/savings/suggestions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			savingsHandler.Suggestions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Analytics endpoints
	mux.HandleFunc("/api/analytics/summary/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.Summary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analytics/insights/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.Insights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analytics/expense-reduction/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyticsHandler.ExpenseReduction(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Dashboard endpoint
	mux.HandleFunc("/api/dashboard/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboardHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health and root endpoints
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" && r.URL.Path != "/api" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "FinanceWise API is running",
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
