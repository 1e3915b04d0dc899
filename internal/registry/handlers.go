package registry

import (
	"encoding/json"
	"net/http"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func DevelopmentListHandler(w http.ResponseWriter, r *http.Request) {
	var devs []Development

	query := db.DB.Preload("Permits.PermitName").Preload("Offsets.ImplementationTimes")
	if use := r.URL.Query().Get("use"); use != "" {
		query = query.Where("use = ?", use)
	}
	if err := query.Find(&devs).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]DevelopmentOut, 0, len(devs))
	for _, dev := range devs {
		o, err := toDevelopmentOut(dev)
		if err != nil {
			http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func DevelopmentHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dev Development
	err := db.DB.Preload("Permits.PermitName").Preload("Offsets.ImplementationTimes").
		First(&dev, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Development not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toDevelopmentOut(dev)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// DevelopmentBatchHandler returns developments for a list of IDs in one
// round trip, for map views that select many footprints at once.
func DevelopmentBatchHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(input.IDs) == 0 {
		http.Error(w, "No IDs provided", http.StatusBadRequest)
		return
	}

	var devs []Development
	err := db.DB.Raw(`
		SELECT * FROM registry.developments
		WHERE id = ANY(?) OR unique_id = ANY(?)
	`, pq.Array(input.IDs), pq.Array(input.IDs)).Scan(&devs).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]DevelopmentOut, 0, len(devs))
	for _, dev := range devs {
		o, err := toDevelopmentOut(dev)
		if err != nil {
			http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type developmentInput struct {
	UniqueID                            string          `json:"unique_id"`
	Use                                 string          `json:"use"`
	Footprint                           json.RawMessage `json:"footprint"`
	GeoInfo                             ZoneOverlaps    `json:"geo_info"`
	Applicant                           string          `json:"applicant"`
	ApplicationTitle                    string          `json:"application_title"`
	ActivityDescription                 string          `json:"activity_description"`
	Authority                           string          `json:"authority"`
	CaseOfficer                         string          `json:"case_officer"`
	EnvironmentalConsultancy            string          `json:"environmental_consultancy"`
	EnvironmentalAssessmentPractitioner string          `json:"environmental_assessment_practitioner"`
	LocationDescription                 string          `json:"location_description"`
	ReferenceNo                         string          `json:"reference_no"`
}

func (input developmentInput) apply(dev *Development) error {
	if input.Footprint != nil {
		footprint, err := geoJSONToWKT(input.Footprint)
		if err != nil {
			return err
		}
		dev.Footprint = footprint
	}
	dev.UniqueID = input.UniqueID
	dev.Use = input.Use
	dev.GeoInfo = input.GeoInfo
	dev.Applicant = input.Applicant
	dev.ApplicationTitle = input.ApplicationTitle
	dev.ActivityDescription = input.ActivityDescription
	dev.Authority = input.Authority
	dev.CaseOfficer = input.CaseOfficer
	dev.EnvironmentalConsultancy = input.EnvironmentalConsultancy
	dev.EnvironmentalAssessmentPractitioner = input.EnvironmentalAssessmentPractitioner
	dev.LocationDescription = input.LocationDescription
	dev.ReferenceNo = input.ReferenceNo
	return nil
}

func DevelopmentCreateHandler(w http.ResponseWriter, r *http.Request) {
	var input developmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.UniqueID == "" || input.Use == "" {
		http.Error(w, "unique_id and use are required", http.StatusBadRequest)
		return
	}

	dev := Development{ID: uuid.New()}
	if err := input.apply(&dev); err != nil {
		http.Error(w, "Invalid footprint geometry: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.DB.Create(&dev).Error; err != nil {
		http.Error(w, "Failed to create development: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toDevelopmentOut(dev)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(out)
}

func DevelopmentUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dev Development
	if err := db.DB.First(&dev, "id = ?", id).Error; err != nil {
		http.Error(w, "Development not found", http.StatusNotFound)
		return
	}

	var input developmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := input.apply(&dev); err != nil {
		http.Error(w, "Invalid footprint geometry: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.DB.Save(&dev).Error; err != nil {
		http.Error(w, "Failed to update development", http.StatusInternalServerError)
		return
	}

	out, err := toDevelopmentOut(dev)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func DevelopmentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Delete(&Development{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete development", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Development not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DevelopmentOffsetsHandler lists the offsets attached to one development.
func DevelopmentOffsetsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var offsets []Offset
	err := db.DB.Preload("ImplementationTimes").
		Find(&offsets, "development_id = ?", id).Error
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]OffsetOut, 0, len(offsets))
	for _, offset := range offsets {
		o, err := toOffsetOut(offset)
		if err != nil {
			http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func OffsetListHandler(w http.ResponseWriter, r *http.Request) {
	var offsets []Offset
	if err := db.DB.Preload("ImplementationTimes").Find(&offsets).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]OffsetOut, 0, len(offsets))
	for _, offset := range offsets {
		o, err := toOffsetOut(offset)
		if err != nil {
			http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, o)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func OffsetHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var offset Offset
	err := db.DB.Preload("ImplementationTimes").First(&offset, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Offset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toOffsetOut(offset)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type offsetInput struct {
	DevelopmentID string          `json:"development_id"`
	Polygon       json.RawMessage `json:"polygon"`
	Type          string          `json:"type"`
	Duration      string          `json:"duration"`
	Info          ZoneOverlaps    `json:"info"`
}

func OffsetCreateHandler(w http.ResponseWriter, r *http.Request) {
	var input offsetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	devID, err := uuid.Parse(input.DevelopmentID)
	if err != nil {
		http.Error(w, "Invalid development_id", http.StatusBadRequest)
		return
	}

	var dev Development
	if err := db.DB.First(&dev, "id = ?", devID).Error; err != nil {
		http.Error(w, "Development not found", http.StatusNotFound)
		return
	}

	offset := Offset{
		ID:            uuid.New(),
		DevelopmentID: devID,
		Type:          input.Type,
		Duration:      input.Duration,
		Info:          input.Info,
	}
	if input.Polygon != nil {
		polyWKT, err := geoJSONToWKT(input.Polygon)
		if err != nil {
			http.Error(w, "Invalid polygon geometry: "+err.Error(), http.StatusBadRequest)
			return
		}
		offset.Polygon = &polyWKT
	}

	if err := db.DB.Create(&offset).Error; err != nil {
		http.Error(w, "Failed to create offset: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toOffsetOut(offset)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(out)
}

func OffsetUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var offset Offset
	if err := db.DB.First(&offset, "id = ?", id).Error; err != nil {
		http.Error(w, "Offset not found", http.StatusNotFound)
		return
	}

	var input offsetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	offset.Type = input.Type
	offset.Duration = input.Duration
	offset.Info = input.Info
	if input.Polygon != nil {
		polyWKT, err := geoJSONToWKT(input.Polygon)
		if err != nil {
			http.Error(w, "Invalid polygon geometry: "+err.Error(), http.StatusBadRequest)
			return
		}
		offset.Polygon = &polyWKT
	}

	if err := db.DB.Save(&offset).Error; err != nil {
		http.Error(w, "Failed to update offset", http.StatusInternalServerError)
		return
	}

	out, err := toOffsetOut(offset)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func OffsetDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Delete(&Offset{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete offset", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Offset not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func PermitNameListHandler(w http.ResponseWriter, r *http.Request) {
	var names []PermitName
	if err := db.DB.Order("name").Find(&names).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(names); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func ImplementationTimeListHandler(w http.ResponseWriter, r *http.Request) {
	var times []OffsetImplementationTime
	if err := db.DB.Order("name").Find(&times).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(times); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
