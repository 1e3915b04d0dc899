package seeds

import (
	"fmt"
	"log"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The survey spreadsheets reference these names verbatim: the importer
// looks them up by exact string match.

var permitNames = []registry.PermitName{
	{Name: "Environmental Impact Assessment", Authority: "Department of Environmental Affairs"},
	{Name: "Department of Agriculture, Forestry and Fisheries Permit", Authority: "Department of Agriculture, Forestry and Fisheries"},
	{Name: "Water Use License Application", Authority: "Department of Water Affairs"},
	{Name: "Department of Mineral Resources", Authority: "Department of Mineral Resources"},
}

var implementationTimes = []string{
	"Before development",
	"During development",
	"After development - 6 months",
	"After development - 12 months",
	"After development - 24 months",
	"After development - more than 24 months",
}

func SeedPermitNames() error {
	created := 0
	for _, p := range permitNames {
		var existing registry.PermitName
		err := db.DB.First(&existing, "name = ?", p.Name).Error

		if err == nil {
			log.Printf("⚠️ Permit name exists, skipping: %s", p.Name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on permit name %s: %w", p.Name, err)
		}

		p.ID = uuid.New()
		if err := db.DB.Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create permit name %s: %w", p.Name, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d permit names", created)
	return nil
}

func SeedImplementationTimes() error {
	created := 0
	for _, name := range implementationTimes {
		var existing registry.OffsetImplementationTime
		err := db.DB.First(&existing, "name = ?", name).Error

		if err == nil {
			log.Printf("⚠️ Implementation time exists, skipping: %s", name)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on implementation time %s: %w", name, err)
		}

		t := registry.OffsetImplementationTime{ID: uuid.New(), Name: name}
		if err := db.DB.Create(&t).Error; err != nil {
			return fmt.Errorf("failed to create implementation time %s: %w", name, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d implementation times", created)
	return nil
}
