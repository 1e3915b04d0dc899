package offsetsimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// SurveyRow is one development/offset record from the survey spreadsheet.
// Flag columns are boolean-like: any non-empty value means "yes".
type SurveyRow struct {
	UniqueID string
	Year     string
	Type     string
	Duration string

	PermitEIA  bool
	PermitDAFF bool
	PermitWULA bool
	PermitDMR  bool

	ImplementBefore bool
	ImplementDuring bool
	Implement6M     bool
	Implement12M    bool
	Implement24M    bool
	ImplementLonger bool
}

// InfoRow is one record from the development-info spreadsheet, keyed by
// unique_id.
type InfoRow struct {
	Applicant                           string
	ApplicationTitle                    string
	ActivityDescription                 string
	Authority                           string
	CaseOfficer                         string
	EnvironmentalConsultancy            string
	EnvironmentalAssessmentPractitioner string
	LocationDescription                 string
	ReferenceNo                         string
	DateIssued                          string // YYYY/MM/DD, may be blank
}

func headerIndex(header []string) map[string]int {
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	return col
}

func requireColumns(col map[string]int, required []string) error {
	for _, k := range required {
		if _, ok := col[k]; !ok {
			return fmt.Errorf("missing required column: %s", k)
		}
	}
	return nil
}

// ParseSurveyCSV reads the survey spreadsheet. Rows with a blank year cell
// are header artifacts from the source workbook and are dropped silently.
func ParseSurveyCSV(path string) ([]SurveyRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.New("csv has no header row")
	}
	col := headerIndex(header)

	required := []string{
		"unique_id", "year", "type", "duration",
		"permit_eia", "permit_daff", "permit_wula", "permit_dmr",
		"implement_before", "implement_during", "implement_6m",
		"implement_12m", "implement_24m", "implement_longer",
	}
	if err := requireColumns(col, required); err != nil {
		return nil, err
	}

	var out []SurveyRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		flag := func(name string) bool { return get(name) != "" }

		if get("year") == "" {
			continue
		}

		out = append(out, SurveyRow{
			UniqueID:        get("unique_id"),
			Year:            get("year"),
			Type:            get("type"),
			Duration:        get("duration"),
			PermitEIA:       flag("permit_eia"),
			PermitDAFF:      flag("permit_daff"),
			PermitWULA:      flag("permit_wula"),
			PermitDMR:       flag("permit_dmr"),
			ImplementBefore: flag("implement_before"),
			ImplementDuring: flag("implement_during"),
			Implement6M:     flag("implement_6m"),
			Implement12M:    flag("implement_12m"),
			Implement24M:    flag("implement_24m"),
			ImplementLonger: flag("implement_longer"),
		})
	}

	return out, nil
}

// ParseInfoCSV reads the development-info spreadsheet into a map keyed by
// unique_id. A duplicate unique_id keeps the last row, matching how the
// capture sheets are amended in place.
func ParseInfoCSV(path string) (map[string]InfoRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, errors.New("csv has no header row")
	}
	col := headerIndex(header)

	if err := requireColumns(col, []string{"unique_id"}); err != nil {
		return nil, err
	}

	out := map[string]InfoRow{}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		uid := get("unique_id")
		if uid == "" {
			continue
		}

		out[uid] = InfoRow{
			Applicant:                           get("applicant"),
			ApplicationTitle:                    get("application_title"),
			ActivityDescription:                 get("activity_description"),
			Authority:                           get("authority"),
			CaseOfficer:                         get("case_officer"),
			EnvironmentalConsultancy:            get("environmental_consultancy"),
			EnvironmentalAssessmentPractitioner: get("environmental_assessment_practitioner"),
			LocationDescription:                 get("location_description"),
			ReferenceNo:                         get("reference_no"),
			DateIssued:                          get("date_issued"),
		}
	}

	return out, nil
}
