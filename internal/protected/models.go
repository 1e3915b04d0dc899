package protected

import (
	"time"

	"github.com/google/uuid"
)

// Protected-area type codes.
const (
	TypeRamsar          = "RA"
	TypeWorldHeritage   = "WH"
	TypeNationalPark    = "NP"
	TypeBotanicalGarden = "BG"
	TypeProvince        = "PR"
)

// ProtectedArea is a named polygon with statutory protection, or a
// provincial boundary loaded from the same survey sources.
type ProtectedArea struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"size:500" json:"name"`
	Identifier string     `gorm:"size:100" json:"identifier"`
	Date       *time.Time `gorm:"type:date" json:"date"`
	Type       string     `gorm:"size:2" json:"type"`

	// Polygon in WGS84, normalized to 2D on import.
	Polygon string `gorm:"type:geometry(Geometry,4326)" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProtectedArea) TableName() string { return "protected.protected_areas" }
