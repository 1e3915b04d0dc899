package offsetsimport

import (
	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
	"gorm.io/gorm"
)

// Permit names the survey's flag columns map onto.
const (
	PermitEIA  = "Environmental Impact Assessment"
	PermitDAFF = "Department of Agriculture, Forestry and Fisheries Permit"
	PermitWULA = "Water Use License Application"
	PermitDMR  = "Department of Mineral Resources"
)

// Implementation-time names the survey's flag columns map onto.
const (
	TimeBefore = "Before development"
	TimeDuring = "During development"
	Time6M     = "After development - 6 months"
	Time12M    = "After development - 12 months"
	Time24M    = "After development - 24 months"
	TimeLonger = "After development - more than 24 months"
)

// RefData holds the reference tables loaded once at pipeline start, keyed
// by exact human-readable name. Read-only for the life of the run.
type RefData struct {
	Permits map[string]registry.PermitName
	Times   map[string]registry.OffsetImplementationTime
}

func LoadRefData(db *gorm.DB) (*RefData, error) {
	ref := &RefData{
		Permits: map[string]registry.PermitName{},
		Times:   map[string]registry.OffsetImplementationTime{},
	}

	var permits []registry.PermitName
	if err := db.Find(&permits).Error; err != nil {
		return nil, err
	}
	for _, p := range permits {
		ref.Permits[p.Name] = p
	}

	var times []registry.OffsetImplementationTime
	if err := db.Find(&times).Error; err != nil {
		return nil, err
	}
	for _, t := range times {
		ref.Times[t.Name] = t
	}

	return ref, nil
}

func (ref *RefData) permit(uniqueID, name string) (registry.PermitName, error) {
	p, ok := ref.Permits[name]
	if !ok {
		return registry.PermitName{}, &ReferenceDataMissingError{UniqueID: uniqueID, Name: name}
	}
	return p, nil
}

func (ref *RefData) implementationTime(uniqueID, name string) (registry.OffsetImplementationTime, error) {
	t, ok := ref.Times[name]
	if !ok {
		return registry.OffsetImplementationTime{}, &ReferenceDataMissingError{UniqueID: uniqueID, Name: name}
	}
	return t, nil
}
