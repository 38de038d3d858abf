package storage

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings for the lookup service and
// the label generator. Defaults mirror the production workbook layout.
type Config struct {
	XLSXPath         string
	RosterSheet      string
	MaintenanceSheet string
	BaseURL          string
	LabelFontPath    string
	Port             string
}

// LoadConfig reads .env (when present) and resolves every setting with a
// default. Missing .env is not an error so tests and the CLI can run on
// plain environment variables.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment defaults")
	}
	return Config{
		XLSXPath:         getenv("FLEET_XLSX_PATH", "data/법인차량현황.xlsx"),
		RosterSheet:      getenv("ROSTER_SHEET", "법인차량현황"),
		MaintenanceSheet: getenv("MAINTENANCE_SHEET", "정비현황"),
		BaseURL:          getenv("BASE_URL", "http://localhost:8080"),
		LabelFontPath:    getenv("LABEL_FONT_PATH", ""),
		Port:             getenv("PORT", "8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
