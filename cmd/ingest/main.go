package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/financewise/internal/ai"
	"github.com/dvloznov/financewise/internal/config"
	"github.com/dvloznov/financewise/internal/ingest"
	"github.com/dvloznov/financewise/internal/logger"
	"github.com/dvloznov/financewise/internal/store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	file := flag.String("file", "", "Path to the CSV bank statement")
	userID := flag.String("user", "", "User ID to import transactions for")
	flag.Parse()

	if *file == "" || *userID == "" {
		log.Fatal().Msg("Error: --file and --user are required")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	transactions := store.NewTransactionRepository(client.Database(cfg.DBName))

	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiModel, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	importer := ingest.NewImporter(transactions, gemini, log)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open CSV file")
	}
	defer f.Close()

	log.Info().Str("file", *file).Str("user_id", *userID).Msg("Starting import")

	count, err := importer.ImportCSV(ctx, *userID, f)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d transactions.\n", count)
}
