package offsetsimport

import (
	"errors"
	"testing"

	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
)

func TestResolveUse(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"Agriculture", registry.UseAgriculture},
		{"Business", registry.UseBusiness},
		{"Commercial", registry.UseCommercial},
		{"Government", registry.UseGovernment},
		{"Government purposes", registry.UseGovernmentPurposes},
		{"Industrial", registry.UseIndustrial},
		{"Mining", registry.UseMining},
		{"Multi-use (Public, Residential, Businees and commercial)", registry.UseMultiUse},
		{"Recreational", registry.UseRecreational},
		{"Residential", registry.UseResidential},
		{"Transport", registry.UseTransport},
		{"Unknown", registry.UseUnknown},
	}

	for _, tc := range cases {
		got, err := resolveUse("D1", tc.value)
		if err != nil {
			t.Errorf("resolveUse(%q) failed: %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("resolveUse(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestResolveUseUnmapped(t *testing.T) {
	_, err := resolveUse("D1", "Shopping centre")
	if err == nil {
		t.Fatal("expected error for unmapped use")
	}
	var unmapped *UnmappedCategoryError
	if !errors.As(err, &unmapped) {
		t.Fatalf("expected *UnmappedCategoryError, got %T", err)
	}
	if unmapped.UniqueID != "D1" || unmapped.Value != "Shopping centre" {
		t.Errorf("error lost context: %+v", unmapped)
	}
}

func TestResolveDurationCaseInsensitive(t *testing.T) {
	for _, value := range []string{"Perpetuity", "perpetuity", "PERPETUITY"} {
		got, err := resolveDuration("D1", value)
		if err != nil {
			t.Fatalf("resolveDuration(%q) failed: %v", value, err)
		}
		if got != registry.DurationPerpetuity {
			t.Errorf("resolveDuration(%q) = %q, want %q", value, got, registry.DurationPerpetuity)
		}
	}
}

func TestResolveDurationBuckets(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"unspecified", registry.DurationUnspecified},
		{"unknown", registry.DurationUnknown},
		{"< 20 yrs", registry.DurationLower},
		{"20+", registry.DurationMidrange},
		{"50+ yrs", registry.DurationLong},
	}
	for _, tc := range cases {
		got, err := resolveDuration("D1", tc.value)
		if err != nil {
			t.Errorf("resolveDuration(%q) failed: %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("resolveDuration(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}

	if _, err := resolveDuration("D1", "forever and a day"); err == nil {
		t.Error("expected error for unmapped duration")
	}
}
