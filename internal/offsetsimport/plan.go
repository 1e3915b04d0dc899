package offsetsimport

import (
	"context"
	"fmt"
	"time"

	"github.com/EcoAtlasZA/offsets-backend/internal/geometry"
	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
	"github.com/EcoAtlasZA/offsets-backend/internal/vegmap"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ZoneOracle is the vegetation-map identify service, abstracted so the row
// builder can be tested without a network.
type ZoneOracle interface {
	AreaInfo(ctx context.Context, polygon orb.Polygon) (map[string]vegmap.ZoneInfo, error)
}

// rowPlan is everything one survey row resolves to, computed before any
// write. The development is always present; the offset part may instead
// carry OffsetErr, in which case the development is still persisted and the
// offset stage is logged and skipped (partial commit is accepted behavior).
type rowPlan struct {
	Development registry.Development
	PermitNames []registry.PermitName

	Offset *registry.Offset
	Times  []registry.OffsetImplementationTime

	// OffsetErr records why the offset stage produced nothing: a join miss
	// against the offset feature index, an unmapped duration, or a failed
	// zone lookup.
	OffsetErr error
}

// buildRow resolves one survey row against the feature indexes, the info
// table, and the reference data, calling the oracle for zone overlaps. A
// returned error means the whole row is skipped and no record is written.
func buildRow(
	ctx context.Context,
	row SurveyRow,
	infos map[string]InfoRow,
	devFeatures, offsetFeatures *FeatureIndex,
	ref *RefData,
	oracle ZoneOracle,
) (*rowPlan, error) {
	uid := row.UniqueID

	info, ok := infos[uid]
	if !ok {
		return nil, &JoinMissError{UniqueID: uid, Source: "info spreadsheet"}
	}

	devFeature, ok := devFeatures.ByID[uid]
	if !ok {
		return nil, &JoinMissError{UniqueID: uid, Source: "development features"}
	}

	geoInfo, err := oracle.AreaInfo(ctx, devFeature.Polygon)
	if err != nil {
		return nil, fmt.Errorf("row %s: %w", uid, err)
	}

	use, err := resolveUse(uid, row.Type)
	if err != nil {
		return nil, err
	}

	permitNames, err := resolvePermits(row, ref)
	if err != nil {
		return nil, err
	}

	dev := registry.Development{
		ID:                                  uuid.New(),
		UniqueID:                            uid,
		Use:                                 use,
		Footprint:                           geometry.ToWKT(devFeature.Polygon),
		GeoInfo:                             geoInfo,
		Applicant:                           info.Applicant,
		ApplicationTitle:                    info.ApplicationTitle,
		ActivityDescription:                 info.ActivityDescription,
		Authority:                           info.Authority,
		CaseOfficer:                         info.CaseOfficer,
		EnvironmentalConsultancy:            info.EnvironmentalConsultancy,
		EnvironmentalAssessmentPractitioner: info.EnvironmentalAssessmentPractitioner,
		LocationDescription:                 info.LocationDescription,
		ReferenceNo:                         info.ReferenceNo,
	}
	if info.DateIssued != "" {
		issued, err := time.Parse("2006/01/02", info.DateIssued)
		if err != nil {
			return nil, fmt.Errorf("row %s: bad date_issued %q: %w", uid, info.DateIssued, err)
		}
		dev.DateIssued = &issued
	}

	plan := &rowPlan{Development: dev, PermitNames: permitNames}
	plan.buildOffset(ctx, row, offsetFeatures, ref, oracle)
	return plan, nil
}

// buildOffset resolves the offset stage. Failures land in plan.OffsetErr
// rather than failing the row, since the development is created regardless.
func (plan *rowPlan) buildOffset(
	ctx context.Context,
	row SurveyRow,
	offsetFeatures *FeatureIndex,
	ref *RefData,
	oracle ZoneOracle,
) {
	uid := row.UniqueID

	feature, ok := offsetFeatures.ByID[uid]
	if !ok {
		plan.OffsetErr = &JoinMissError{UniqueID: uid, Source: "offset features"}
		return
	}

	duration, err := resolveDuration(uid, row.Duration)
	if err != nil {
		plan.OffsetErr = err
		return
	}

	info, err := oracle.AreaInfo(ctx, feature.Polygon)
	if err != nil {
		plan.OffsetErr = fmt.Errorf("row %s: %w", uid, err)
		return
	}

	times, err := resolveImplementationTimes(row, ref)
	if err != nil {
		plan.OffsetErr = err
		return
	}

	polygon := geometry.ToWKT(feature.Polygon)
	plan.Offset = &registry.Offset{
		ID:            uuid.New(),
		DevelopmentID: plan.Development.ID,
		Polygon:       &polygon,
		Type:          registry.OffsetHectares,
		Duration:      duration,
		Info:          info,
	}
	plan.Times = times
}

func resolvePermits(row SurveyRow, ref *RefData) ([]registry.PermitName, error) {
	var names []registry.PermitName
	for _, sel := range []struct {
		set  bool
		name string
	}{
		{row.PermitEIA, PermitEIA},
		{row.PermitDAFF, PermitDAFF},
		{row.PermitWULA, PermitWULA},
		{row.PermitDMR, PermitDMR},
	} {
		if !sel.set {
			continue
		}
		p, err := ref.permit(row.UniqueID, sel.name)
		if err != nil {
			return nil, err
		}
		names = append(names, p)
	}
	return names, nil
}

func resolveImplementationTimes(row SurveyRow, ref *RefData) ([]registry.OffsetImplementationTime, error) {
	var times []registry.OffsetImplementationTime
	for _, sel := range []struct {
		set  bool
		name string
	}{
		{row.ImplementBefore, TimeBefore},
		{row.ImplementDuring, TimeDuring},
		{row.Implement6M, Time6M},
		{row.Implement12M, Time12M},
		{row.Implement24M, Time24M},
		{row.ImplementLonger, TimeLonger},
	} {
		if !sel.set {
			continue
		}
		t, err := ref.implementationTime(row.UniqueID, sel.name)
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, nil
}
