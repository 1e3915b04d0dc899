package registry

import (
	"log"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "registry"); err != nil {
		log.Fatal("Failed to create registry schema: ", err)
	}

	if err := db.DB.AutoMigrate(
		&PermitName{},
		&Development{},
		&Permit{},
		&OffsetImplementationTime{},
		&Offset{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
