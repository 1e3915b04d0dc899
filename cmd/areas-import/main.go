package main

import (
	"flag"
	"log"
	"os"

	"github.com/EcoAtlasZA/offsets-backend/internal/areaimport"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	var (
		provincesPath = flag.String("provinces", "", "path to provinces GeoJSON")
		ramsarPath    = flag.String("ramsar", "", "path to Ramsar sites GeoJSON")
		dbURL         = flag.String("db", "", "DATABASE_URL")
	)
	flag.Parse()

	if *dbURL == "" || (*provincesPath == "" && *ramsarPath == "") {
		flag.Usage()
		os.Exit(2)
	}

	db, err := gorm.Open(postgres.Open(*dbURL), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	if *provincesPath != "" {
		if _, err := areaimport.LoadProvinces(db, *provincesPath); err != nil {
			log.Fatal(err)
		}
	}
	if *ramsarPath != "" {
		if _, err := areaimport.LoadProtectedAreas(db, *ramsarPath); err != nil {
			log.Fatal(err)
		}
	}
}
