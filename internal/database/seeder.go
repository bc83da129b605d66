// server/internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/auth"
	"asset-verse-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the bootstrap HR account on first start.
func SeedAdmin(db *mongo.Database, cfg config.Config) error {
	if cfg.Seed.AdminEmail == "" {
		log.Println("No seed admin configured. Seeding skipped.")
		return nil
	}

	userCollection := db.Collection("users")

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": cfg.Seed.AdminEmail})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Seed admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Seed admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:            cfg.Seed.AdminEmail,
		Name:             "Admin",
		Password:         hashedPassword,
		Role:             models.RoleHR,
		CompanyName:      cfg.Seed.CompanyName,
		PackageLimit:     5,
		CurrentEmployees: 0,
		Subscription:     "basic",
		CreatedAt:        time.Now(),
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Seed admin created successfully.")
	return nil
}
