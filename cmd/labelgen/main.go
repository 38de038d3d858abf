package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"backend/services"
	"backend/storage"
)

var (
	xlsxPath    string
	rosterSheet string
	baseURL     string
	outDir      string
	pdfPath     string
	fontPath    string
)

var rootCmd = &cobra.Command{
	Use:   "labelgen",
	Short: "Generate per-vehicle QR images and a printable A4 label sheet",
	Long: `labelgen reads the vehicle roster sheet and writes one QR PNG per
vehicle with a non-empty identifier, plus a single multi-page PDF laying the
labels out 3x4 per A4 page. Each QR encodes the lookup deep link
{base_url}?car_id={vehicle_id}. Flags default to the .env/environment
configuration of the lookup service.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "path to the fleet workbook (default: FLEET_XLSX_PATH)")
	rootCmd.Flags().StringVar(&rosterSheet, "sheet", "", "roster sheet name (default: ROSTER_SHEET)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "deep link base URL (default: BASE_URL)")
	rootCmd.Flags().StringVar(&outDir, "out", "qr_codes", "directory for per-vehicle QR images")
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "QR_labels_A4.pdf", "output path for the combined label sheet")
	rootCmd.Flags().StringVar(&fontPath, "font", "", "TTF with Hangul glyphs for label captions (default: LABEL_FONT_PATH)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := storage.LoadConfig()
	if xlsxPath == "" {
		xlsxPath = cfg.XLSXPath
	}
	if rosterSheet == "" {
		rosterSheet = cfg.RosterSheet
	}
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	if fontPath == "" {
		fontPath = cfg.LabelFontPath
	}

	roster, err := storage.LoadRoster(xlsxPath, rosterSheet)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	for _, v := range roster.Vehicles {
		if v.VehicleID == "" {
			continue
		}
		img, err := services.VehicleQRPNG(baseURL, v)
		if err != nil {
			return fmt.Errorf("qr for %s: %w", v.VehicleID, err)
		}
		out := filepath.Join(outDir, v.VehicleID+".png")
		if err := os.WriteFile(out, img, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		written++
	}

	pdf, err := services.BuildLabelSheet(roster.Vehicles, baseURL, fontPath)
	if err != nil {
		return fmt.Errorf("build label sheet: %w", err)
	}
	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return fmt.Errorf("write %s: %w", pdfPath, err)
	}

	log.Printf("[labelgen] wrote %d QR images to %s and label sheet %s", written, outDir, pdfPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
