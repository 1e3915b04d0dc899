package offsetsimport

import (
	"strings"

	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
)

// useMapping resolves the survey's free-text development type to a use
// code. Matches are exact: an upstream rename must be added here
// deliberately, not papered over.
var useMapping = map[string]string{
	"Agriculture":         registry.UseAgriculture,
	"Business":            registry.UseBusiness,
	"Commercial":          registry.UseCommercial,
	"Government":          registry.UseGovernment,
	"Government purposes": registry.UseGovernmentPurposes,
	"Industrial":          registry.UseIndustrial,
	"Mining":              registry.UseMining,
	"Multi-use (Public, Residential, Businees and commercial)": registry.UseMultiUse,
	"Recreational": registry.UseRecreational,
	"Residential":  registry.UseResidential,
	"Transport":    registry.UseTransport,
	"Unknown":      registry.UseUnknown,
}

// durationMapping resolves the survey's free-text offset duration, matched
// case-insensitively.
var durationMapping = map[string]string{
	"perpetuity":  registry.DurationPerpetuity,
	"unspecified": registry.DurationUnspecified,
	"unknown":     registry.DurationUnknown,
	"< 20 yrs":    registry.DurationLower,
	"20+":         registry.DurationMidrange,
	"50+ yrs":     registry.DurationLong,
}

func resolveUse(uniqueID, value string) (string, error) {
	code, ok := useMapping[value]
	if !ok {
		return "", &UnmappedCategoryError{UniqueID: uniqueID, Field: "type", Value: value}
	}
	return code, nil
}

func resolveDuration(uniqueID, value string) (string, error) {
	code, ok := durationMapping[strings.ToLower(value)]
	if !ok {
		return "", &UnmappedCategoryError{UniqueID: uniqueID, Field: "duration", Value: value}
	}
	return code, nil
}
