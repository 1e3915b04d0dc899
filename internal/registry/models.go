package registry

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EcoAtlasZA/offsets-backend/internal/vegmap"
	"github.com/google/uuid"
)

// Development use codes.
const (
	UseAgriculture        = "AG"
	UseBusiness           = "BU"
	UseCommercial         = "CO"
	UseGovernment         = "GO"
	UseGovernmentPurposes = "GP"
	UseIndustrial         = "IN"
	UseMining             = "MI"
	UseMultiUse           = "MU"
	UseRecreational       = "RC"
	UseResidential        = "RE"
	UseTransport          = "TR"
	UseUnknown            = "UN"
)

// Offset kind codes.
const (
	OffsetHectares  = "HE"
	OffsetResearch  = "RE"
	OffsetRehab     = "RH"
	OffsetFinancial = "FI"
)

// Offset duration codes.
const (
	DurationPerpetuity  = "PE"
	DurationUnspecified = "US"
	DurationUnknown     = "UN"
	DurationLower       = "LT" // < 20 years
	DurationMidrange    = "TF" // 20-50 years
	DurationLong        = "HC" // > 50 years
)

// ZoneOverlaps stores the zone-overlap metadata returned by the
// vegetation-map service as a jsonb column: zone name -> descriptor.
type ZoneOverlaps map[string]vegmap.ZoneInfo

func (z ZoneOverlaps) Value() (driver.Value, error) {
	if z == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(z)
}

func (z *ZoneOverlaps) Scan(value interface{}) error {
	if value == nil {
		*z = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ZoneOverlaps", value)
	}
	return json.Unmarshal(data, z)
}

// PermitName is static reference data: a permit type issued by a named
// authority, e.g. "Water Use License Application" / "Department of Water
// Affairs". Looked up by exact name during imports.
type PermitName struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex:idx_permit_name_authority" json:"name"`
	Authority string    `gorm:"size:100;uniqueIndex:idx_permit_name_authority" json:"authority"`
}

func (PermitName) TableName() string { return "registry.permit_names" }

// Development is a completed construction project somewhere in South
// Africa, with its permits obtained and its footprint surveyed.
type Development struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UniqueID string    `gorm:"size:200;uniqueIndex" json:"unique_id"`
	Use      string    `gorm:"size:2" json:"use"`

	// Footprint is a POLYGON in WGS84, stored normalized to 2D.
	Footprint string `gorm:"type:geometry(Polygon,4326)" json:"-"`

	GeoInfo ZoneOverlaps `gorm:"type:jsonb" json:"geo_info"`

	Applicant                           string     `gorm:"size:100" json:"applicant"`
	ApplicationTitle                    string     `gorm:"size:500" json:"application_title"`
	ActivityDescription                 string     `gorm:"type:text" json:"activity_description"`
	Authority                           string     `gorm:"size:100" json:"authority"`
	CaseOfficer                         string     `gorm:"size:100" json:"case_officer"`
	EnvironmentalConsultancy            string     `gorm:"size:100" json:"environmental_consultancy"`
	EnvironmentalAssessmentPractitioner string     `gorm:"size:100" json:"environmental_assessment_practitioner"`
	LocationDescription                 string     `gorm:"type:text" json:"location_description"`
	ReferenceNo                         string     `gorm:"size:200" json:"reference_no"`
	DateIssued                          *time.Time `gorm:"type:date" json:"date_issued"`

	Permits []Permit `gorm:"foreignKey:DevelopmentID" json:"permits"`
	Offsets []Offset `gorm:"foreignKey:DevelopmentID" json:"offsets"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Development) TableName() string { return "registry.developments" }

// Permit links a Development to a PermitName, with per-issue details. A
// development can hold several permits from different authorities.
type Permit struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PermitNameID  uuid.UUID  `gorm:"type:uuid" json:"permit_name_id"`
	DevelopmentID uuid.UUID  `gorm:"type:uuid;index" json:"development_id"`
	PermitName    PermitName `gorm:"foreignKey:PermitNameID" json:"permit_name"`
	AreaHectares  *int       `json:"area_hectares"`
	DateIssued    *time.Time `gorm:"type:date" json:"date_issued"`
	ReferenceNo   string     `gorm:"size:200" json:"reference_no"`
}

func (Permit) TableName() string { return "registry.permits" }

// OffsetImplementationTime is static reference data: a named window during
// which an offset is to be carried out, e.g. "Before development".
type OffsetImplementationTime struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex" json:"name"`
}

func (OffsetImplementationTime) TableName() string {
	return "registry.offset_implementation_times"
}

// Offset is biodiversity compensation tied to one Development. Offsets of
// type hectares carry a receiving-area polygon; financial and research
// offsets are non-spatial.
type Offset struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DevelopmentID uuid.UUID `gorm:"type:uuid;index" json:"development_id"`

	// Polygon is nullable: non-spatial offsets have none.
	Polygon *string `gorm:"type:geometry(Polygon,4326)" json:"-"`

	Type     string       `gorm:"size:2" json:"type"`
	Duration string       `gorm:"size:2" json:"duration"`
	Info     ZoneOverlaps `gorm:"type:jsonb" json:"info"`

	ImplementationTimes []OffsetImplementationTime `gorm:"many2many:registry.offset_implementation_links;" json:"implementation_times"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Offset) TableName() string { return "registry.offsets" }
