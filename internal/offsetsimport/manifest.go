package offsetsimport

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Manifest lists the survey input files for one import run. Kept in a YAML
// file next to the data drop so the paths travel with the data.
type Manifest struct {
	DevelopmentsGeoJSON string `yaml:"developments_geojson"`
	OffsetsGeoJSON      string `yaml:"offsets_geojson"`
	SurveyCSV           string `yaml:"survey_csv"`
	InfoCSV             string `yaml:"info_csv"`
}

func LoadManifest(path string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}

	missing := func(field string) error {
		return fmt.Errorf("manifest %s: %s is required", path, field)
	}
	if m.DevelopmentsGeoJSON == "" {
		return m, missing("developments_geojson")
	}
	if m.OffsetsGeoJSON == "" {
		return m, missing("offsets_geojson")
	}
	if m.SurveyCSV == "" {
		return m, missing("survey_csv")
	}
	if m.InfoCSV == "" {
		return m, missing("info_csv")
	}
	return m, nil
}
