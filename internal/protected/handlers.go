package protected

import (
	"encoding/json"
	"net/http"

	"github.com/EcoAtlasZA/offsets-backend/internal/db"
	"github.com/EcoAtlasZA/offsets-backend/internal/geometry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"gorm.io/gorm"
)

// AreaOut exposes the stored WKT polygon as GeoJSON.
type AreaOut struct {
	ProtectedArea
	Polygon json.RawMessage `json:"polygon"`
}

func toAreaOut(area ProtectedArea) (AreaOut, error) {
	out := AreaOut{ProtectedArea: area}
	if area.Polygon != "" {
		geom, err := geometry.FromWKT(area.Polygon)
		if err != nil {
			return out, err
		}
		raw, err := json.Marshal(geojson.NewGeometry(geom))
		if err != nil {
			return out, err
		}
		out.Polygon = raw
	}
	return out, nil
}

func AreaListHandler(w http.ResponseWriter, r *http.Request) {
	var areas []ProtectedArea

	query := db.DB
	if areaType := r.URL.Query().Get("type"); areaType != "" {
		query = query.Where("type = ?", areaType)
	}
	if err := query.Order("name").Find(&areas).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]AreaOut, 0, len(areas))
	for _, area := range areas {
		o, err := toAreaOut(area)
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

func AreaHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var area ProtectedArea
	err := db.DB.First(&area, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		http.Error(w, "Protected area not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toAreaOut(area)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

type areaInput struct {
	Name       string          `json:"name"`
	Identifier string          `json:"identifier"`
	Type       string          `json:"type"`
	Polygon    json.RawMessage `json:"polygon"`
}

func AreaCreateHandler(w http.ResponseWriter, r *http.Request) {
	var input areaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.Name == "" || input.Type == "" {
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}

	area := ProtectedArea{
		ID:         uuid.New(),
		Name:       input.Name,
		Identifier: input.Identifier,
		Type:       input.Type,
	}
	if input.Polygon != nil {
		geom, err := geometry.Normalize(input.Polygon)
		if err != nil {
			http.Error(w, "Invalid polygon geometry: "+err.Error(), http.StatusBadRequest)
			return
		}
		area.Polygon = geometry.ToWKT(geom)
	}

	if err := db.DB.Create(&area).Error; err != nil {
		http.Error(w, "Failed to create protected area: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := toAreaOut(area)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(out)
}

func AreaUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var area ProtectedArea
	if err := db.DB.First(&area, "id = ?", id).Error; err != nil {
		http.Error(w, "Protected area not found", http.StatusNotFound)
		return
	}

	var input areaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	area.Name = input.Name
	area.Identifier = input.Identifier
	area.Type = input.Type
	if input.Polygon != nil {
		geom, err := geometry.Normalize(input.Polygon)
		if err != nil {
			http.Error(w, "Invalid polygon geometry: "+err.Error(), http.StatusBadRequest)
			return
		}
		area.Polygon = geometry.ToWKT(geom)
	}

	if err := db.DB.Save(&area).Error; err != nil {
		http.Error(w, "Failed to update protected area", http.StatusInternalServerError)
		return
	}

	out, err := toAreaOut(area)
	if err != nil {
		http.Error(w, "Failed to encode geometry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func AreaDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result := db.DB.Delete(&ProtectedArea{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "Failed to delete protected area", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Protected area not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
