package offsetsimport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const surveyHeader = "unique_id,year,type,duration,permit_eia,permit_daff,permit_wula,permit_dmr," +
	"implement_before,implement_during,implement_6m,implement_12m,implement_24m,implement_longer"

func TestParseSurveyCSV(t *testing.T) {
	path := writeTempFile(t, "survey.csv", surveyHeader+"\n"+
		"D1,2020,Mining,perpetuity,1,,x,,1,,,,,yes\n"+
		"D2,,Mining,perpetuity,,,,,,,,,,\n"+ // blank year: header artifact
		"D3,2021,Residential,unknown,,,,,,,,,,\n")

	rows, err := ParseSurveyCSV(path)
	if err != nil {
		t.Fatalf("ParseSurveyCSV failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(rows))
	}

	d1 := rows[0]
	if d1.UniqueID != "D1" || d1.Year != "2020" || d1.Type != "Mining" || d1.Duration != "perpetuity" {
		t.Errorf("unexpected row: %+v", d1)
	}
	if !d1.PermitEIA || d1.PermitDAFF || !d1.PermitWULA || d1.PermitDMR {
		t.Errorf("permit flags wrong: %+v", d1)
	}
	if !d1.ImplementBefore || d1.ImplementDuring || !d1.ImplementLonger {
		t.Errorf("implementation flags wrong: %+v", d1)
	}

	if rows[1].UniqueID != "D3" {
		t.Errorf("expected D3 second, got %s", rows[1].UniqueID)
	}
}

func TestParseSurveyCSVBOMHeader(t *testing.T) {
	path := writeTempFile(t, "survey.csv", "\ufeff"+surveyHeader+"\n"+
		"D1,2020,Mining,perpetuity,,,,,,,,,,\n")

	rows, err := ParseSurveyCSV(path)
	if err != nil {
		t.Fatalf("ParseSurveyCSV failed on BOM header: %v", err)
	}
	if len(rows) != 1 || rows[0].UniqueID != "D1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestParseSurveyCSVMissingColumn(t *testing.T) {
	path := writeTempFile(t, "survey.csv", "unique_id,year,type\nD1,2020,Mining\n")

	_, err := ParseSurveyCSV(path)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "missing required column") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseInfoCSV(t *testing.T) {
	path := writeTempFile(t, "info.csv",
		"unique_id,applicant,application_title,authority,date_issued\n"+
			"D1,Acme,Golf estate,DEA,2020/03/15\n"+
			"D2,Bravo,,,\n"+
			"D1,Acme Holdings,Golf estate phase 2,DEA,2020/03/15\n")

	infos, err := ParseInfoCSV(path)
	if err != nil {
		t.Fatalf("ParseInfoCSV failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(infos))
	}

	// Duplicate unique_id keeps the last row.
	d1 := infos["D1"]
	if d1.Applicant != "Acme Holdings" {
		t.Errorf("expected last-write-wins, got applicant %q", d1.Applicant)
	}
	if d1.DateIssued != "2020/03/15" {
		t.Errorf("unexpected date_issued %q", d1.DateIssued)
	}

	if infos["D2"].Applicant != "Bravo" {
		t.Errorf("unexpected D2: %+v", infos["D2"])
	}
}

func TestLoadManifest(t *testing.T) {
	path := writeTempFile(t, "sources.yaml", strings.Join([]string{
		"developments_geojson: input/development_sites.geojson",
		"offsets_geojson: input/offsets_receiving_areas.geojson",
		"survey_csv: input/offsets_spreadsheet.csv",
		"info_csv: input/dev_info_spreadsheet.csv",
	}, "\n"))

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.DevelopmentsGeoJSON != "input/development_sites.geojson" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestLoadManifestMissingField(t *testing.T) {
	path := writeTempFile(t, "sources.yaml",
		"developments_geojson: input/development_sites.geojson\n")

	_, err := LoadManifest(path)
	if err == nil {
		t.Fatal("expected error for incomplete manifest")
	}
}
