package protected

import (
	"log"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "protected"); err != nil {
		log.Fatal("Failed to create protected schema: ", err)
	}

	if err := db.DB.AutoMigrate(&ProtectedArea{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
