package offsetsimport

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/EcoAtlasZA/offsets-backend/internal/registry"
	"github.com/EcoAtlasZA/offsets-backend/internal/vegmap"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Manifest    Manifest
	DatabaseURL string

	// Wipe must be set explicitly: the importer deletes every existing
	// development and offset before loading.
	Wipe bool

	// Oracle defaults to the SANBI vegetation-map client.
	Oracle ZoneOracle
}

// Summary is the run log's bottom line.
type Summary struct {
	DevelopmentsCreated int
	OffsetsCreated      int
	RowsSkipped         int
	RowsFailed          int
	OffsetsSkipped      int

	// DuplicateFeatureIDs lists Uniq_IDs that appeared more than once in a
	// source feature collection. Last write wins, so these need a look.
	DuplicateFeatureIDs []string
}

// Run executes the full import: purge, index, then one commit per row.
// Row-level problems are logged and skipped; only run-level failures (bad
// inputs, unreachable database) abort.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if !cfg.Wipe {
		return nil, errors.New("refusing to run: set Wipe=true (this importer deletes all developments and offsets)")
	}

	oracle := cfg.Oracle
	if oracle == nil {
		oracle = vegmap.NewClient()
	}

	devFeatures, err := IndexFeatures(cfg.Manifest.DevelopmentsGeoJSON)
	if err != nil {
		return nil, err
	}
	offsetFeatures, err := IndexFeatures(cfg.Manifest.OffsetsGeoJSON)
	if err != nil {
		return nil, err
	}
	infos, err := ParseInfoCSV(cfg.Manifest.InfoCSV)
	if err != nil {
		return nil, err
	}
	rows, err := ParseSurveyCSV(cfg.Manifest.SurveyCSV)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	ref, err := LoadRefData(db)
	if err != nil {
		return nil, err
	}

	// Leading purge barrier: must finish before the first row is processed.
	if err := wipeRegistry(db); err != nil {
		return nil, err
	}

	summary := &Summary{}
	summary.DuplicateFeatureIDs = append(summary.DuplicateFeatureIDs, devFeatures.Duplicates...)
	summary.DuplicateFeatureIDs = append(summary.DuplicateFeatureIDs, offsetFeatures.Duplicates...)
	for _, uid := range summary.DuplicateFeatureIDs {
		log.Printf("[import] duplicate feature id %s (last write wins)", uid)
	}

	for _, row := range rows {
		plan, err := buildRow(ctx, row, infos, devFeatures, offsetFeatures, ref, oracle)
		if err != nil {
			var joinMiss *JoinMissError
			if errors.As(err, &joinMiss) {
				log.Printf("[import] skipping: %v", err)
				summary.RowsSkipped++
			} else {
				log.Printf("[import] row failed: %v", err)
				summary.RowsFailed++
			}
			continue
		}

		persistRow(db, plan, summary)
	}

	log.Printf("[import] done: %d developments, %d offsets, %d rows skipped, %d rows failed, %d offsets skipped",
		summary.DevelopmentsCreated, summary.OffsetsCreated,
		summary.RowsSkipped, summary.RowsFailed, summary.OffsetsSkipped)
	return summary, nil
}

// persistRow writes one resolved row. Any write error ends this row's
// remaining sub-writes but never the run.
func persistRow(db *gorm.DB, plan *rowPlan, summary *Summary) {
	uid := plan.Development.UniqueID

	if err := db.Create(&plan.Development).Error; err != nil {
		perr := &PersistenceError{UniqueID: uid, Op: "create development", Err: err}
		log.Printf("[import] %v", perr)
		summary.RowsFailed++
		return
	}
	summary.DevelopmentsCreated++

	// Permits attach after the development exists: the join rows need its
	// generated identifier.
	if len(plan.PermitNames) > 0 {
		permits := make([]registry.Permit, 0, len(plan.PermitNames))
		for _, name := range plan.PermitNames {
			permits = append(permits, registry.Permit{
				ID:            uuid.New(),
				DevelopmentID: plan.Development.ID,
				PermitNameID:  name.ID,
			})
		}
		if err := db.Create(&permits).Error; err != nil {
			perr := &PersistenceError{UniqueID: uid, Op: "attach permits", Err: err}
			log.Printf("[import] %v", perr)
			return
		}
	}

	if plan.OffsetErr != nil {
		log.Printf("[import] no offset for %s: %v", uid, plan.OffsetErr)
		summary.OffsetsSkipped++
		return
	}

	if err := db.Create(plan.Offset).Error; err != nil {
		perr := &PersistenceError{UniqueID: uid, Op: "create offset", Err: err}
		log.Printf("[import] %v", perr)
		return
	}

	if len(plan.Times) > 0 {
		if err := db.Model(plan.Offset).Association("ImplementationTimes").Append(plan.Times); err != nil {
			perr := &PersistenceError{UniqueID: uid, Op: "attach implementation times", Err: err}
			log.Printf("[import] %v", perr)
			return
		}
	}
	summary.OffsetsCreated++
}

func wipeRegistry(db *gorm.DB) error {
	sql := `
		TRUNCATE TABLE
			registry.offset_implementation_links,
			registry.offsets,
			registry.permits,
			registry.developments
		CASCADE;
	`
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("purging registry tables: %w", err)
	}
	return nil
}
