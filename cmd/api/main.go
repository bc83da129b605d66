// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/api/routes"
	"asset-verse-api-server/internal/auth"
	"asset-verse-api-server/internal/clock"
	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/database"
	"asset-verse-api-server/internal/s3"
	"asset-verse-api-server/internal/socket"
	"asset-verse-api-server/internal/store/mongostore"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	auth.JwtSecret = []byte(cfg.JWT.Secret)

	// 2. Connect to MongoDB
	client, err := database.Connect(cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.DBName)
	log.Println("Successfully connected to MongoDB")

	// 3. Indexes and bootstrap data
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// 4. Core service over the Mongo stores
	service := core.NewRequestService(
		&mongostore.InventoryStore{DB: db},
		&mongostore.AffiliationRegistry{DB: db},
		&mongostore.RequestLedger{DB: db},
		&mongostore.AssignmentTracker{DB: db},
		clock.NewSystem(),
	)

	// 5. S3 uploader and WebSocket hub
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}
	wsHub := socket.NewHub()

	// 6. Router
	router := routes.SetupRouter(cfg, db, service, s3Uploader, wsHub)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
