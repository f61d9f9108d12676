package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/crpix-studio-backend/api"
	"github.com/rpupo63/crpix-studio-backend/config"
	"github.com/rpupo63/crpix-studio-backend/database"
	"github.com/rpupo63/crpix-studio-backend/models"
	"github.com/rpupo63/crpix-studio-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	setupLogging(c)

	connStr, err := connectionString(c)
	if err != nil {
		log.Fatal().Err(err).Msg("Unsupported database configuration")
	}

	db, err := database.Open(database.Options{
		DSN:           connStr,
		ReplicaDSN:    config.GetString(c, "DB_REPLICA_DSN", ""),
		SlowThreshold: config.GetDuration(c, "DB_SLOW_QUERY_SECONDS", time.Second, 10),
		MaxOpenConns:  config.GetInt(c, "DB_MAX_OPEN_CONNS", 10),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Test database connection
	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = database.Ping(pingCtx, db)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		models.GenerateModels(db)
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		models.GenerateColumnMismatchReport(db)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", false) {
		if err := models.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error during models migration")
		}
		log.Info().Msg("Models migrated")
	}

	store, err := storage.NewS3Store(context.Background(), storage.Config{
		Endpoint:  config.GetString(c, "STORAGE_ENDPOINT", ""),
		Region:    config.GetString(c, "STORAGE_REGION", ""),
		AccessKey: config.GetString(c, "STORAGE_ACCESS_KEY", ""),
		SecretKey: config.GetString(c, "STORAGE_SECRET_KEY", ""),
		Bucket:    config.GetString(c, "STORAGE_BUCKET", "images"),
		PublicURL: config.GetString(c, "STORAGE_PUBLIC_URL", ""),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing image storage")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(database.New(db), store)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// connectionString builds the Postgres DSN from DB_TYPE. "supa" assembles it
// from the SUPABASE_DB_* variables, "url" takes DATABASE_URL as is.
func connectionString(c map[string]string) (string, error) {
	dbType := config.GetString(c, "DB_TYPE", "")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	switch dbType {
	case "supa":
		fmt.Println("Connecting to Supabase database...")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(c, "SUPABASE_DB_HOST", ""),
			config.GetString(c, "SUPABASE_DB_USER", ""),
			config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(c, "SUPABASE_DB_NAME", ""),
			config.GetString(c, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "url":
		dsn := config.GetString(c, "DATABASE_URL", "")
		if dsn == "" {
			return "", fmt.Errorf("DATABASE_URL is empty")
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

func setupLogging(c map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetBool(c, "LOG_PRETTY", false) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
