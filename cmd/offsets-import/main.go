package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/EcoAtlasZA/offsets-backend/internal/offsetsimport"
)

func main() {
	var (
		manifestPath = flag.String("manifest", "", "path to YAML manifest listing the survey input files")
		dbURL        = flag.String("db", "", "DATABASE_URL")
		wipe         = flag.Bool("wipe", false, "DANGER: deletes all developments and offsets before importing")
	)
	flag.Parse()

	if *manifestPath == "" || *dbURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	manifest, err := offsetsimport.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := offsetsimport.Config{
		Manifest:    manifest,
		DatabaseURL: *dbURL,
		Wipe:        *wipe,
	}

	summary, err := offsetsimport.Run(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("imported %d developments and %d offsets (%d rows skipped, %d failed, %d offsets skipped, %d duplicate feature ids)",
		summary.DevelopmentsCreated, summary.OffsetsCreated,
		summary.RowsSkipped, summary.RowsFailed,
		summary.OffsetsSkipped, len(summary.DuplicateFeatureIDs))
}
