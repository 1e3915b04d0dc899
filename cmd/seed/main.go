package main

import (
	"log"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
	"github.com/EcoAtlasZA/offsets-backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()
	registry.Init()

	if err := seeds.SeedAll(); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
