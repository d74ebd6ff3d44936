package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/feed"
	"jobdesk-backend/internal/storage"
)

const defaultPort = 5001

// MyServer holds the shared dependencies every route handler needs.
type MyServer struct {
	port int

	DB      *database.DBinstanceStruct
	Storage storage.Uploader
}

// NewServer constructs the HTTP server: connects the database, the
// object store, starts the daily feed sync and registers the routes.
// A failed dependency is fatal, the process exits with code 1.
func NewServer() *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = defaultPort
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	var store storage.Uploader
	if os.Getenv("GCS_BUCKET") != "" {
		gcs, err := storage.NewGCSClient(context.Background())
		if err != nil {
			log.Fatalf("Object storage failed to initialize: %s", err)
		}
		store = gcs
	} else {
		log.Println("GCS_BUCKET not set, file uploads are disabled")
	}

	s := &MyServer{
		port:    port,
		DB:      db,
		Storage: store,
	}

	if os.Getenv("FEED_URL") != "" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Logger failed to initialize: %s", err)
		}
		if _, err := feed.NewSyncer(db, logger).Start(); err != nil {
			log.Fatalf("Feed sync failed to start: %s", err)
		}
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
