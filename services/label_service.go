package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"net/url"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"backend/models"
)

// Label sheet geometry: a fixed 3x4 grid on A4 with 10mm outer margins.
const (
	labelCols    = 3
	labelRows    = 4
	labelMarginX = 10.0
	labelMarginY = 10.0
)

// VehicleURL is the deep link encoded in every QR code; scanning it opens
// the lookup page with the vehicle pre-selected.
func VehicleURL(baseURL, vehicleID string) string {
	return fmt.Sprintf("%s?car_id=%s", baseURL, url.QueryEscape(vehicleID))
}

// addLabel draws caption text onto the composed image.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	face := inconsolata.Regular8x16
	if bold {
		face = inconsolata.Bold8x16
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{0, 0, 0, 255}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(label)
}

// VehicleQRPNG renders the deep-link QR for one vehicle as a PNG with the
// identifier captioned underneath. The caption face covers ASCII only, so
// the plate number stays off the image; the PDF label sheet carries it with
// a configurable font instead.
func VehicleQRPNG(baseURL string, v models.VehicleRecord) ([]byte, error) {
	qr, err := qrcode.New(VehicleURL(baseURL, v.VehicleID), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr encode %s: %w", v.VehicleID, err)
	}
	qrImg := qr.Image(512)

	qrSize := qrImg.Bounds().Dy()
	padding := 24
	lineHeight := 24
	totalHeight := qrSize + padding + lineHeight + padding

	combined := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
	draw.Draw(combined, combined.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(combined, image.Rect(0, 0, qrSize, qrSize), qrImg, image.Point{}, draw.Src)

	// separator between code and caption
	for x := 0; x < qrSize; x++ {
		combined.Set(x, qrSize+padding/2, color.RGBA{200, 200, 200, 255})
	}

	startY := qrSize + padding + lineHeight
	addLabel(combined, 20, startY, "ID:", true)
	addLabel(combined, 80, startY, v.VehicleID, false)

	var buf bytes.Buffer
	if err := png.Encode(&buf, combined); err != nil {
		return nil, fmt.Errorf("png encode %s: %w", v.VehicleID, err)
	}
	return buf.Bytes(), nil
}

// BuildLabelSheet lays out one QR label per roster row with a non-empty
// identifier on a multi-page A4 document, 12 labels to the page. fontPath
// may name a TTF with Hangul glyphs for the plate caption; with an empty
// path the sheet falls back to Helvetica.
func BuildLabelSheet(vehicles []models.VehicleRecord, baseURL, fontPath string) (*gofpdf.Fpdf, error) {
	var eligible []models.VehicleRecord
	for _, v := range vehicles {
		if v.VehicleID != "" {
			eligible = append(eligible, v)
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	fontName := "Helvetica"
	if fontPath != "" {
		pdf.AddUTF8Font("label", "", fontPath)
		fontName = "label"
	}

	if len(eligible) == 0 {
		pdf.AddPage()
	}

	pageW, pageH := pdf.GetPageSize()
	cellW := (pageW - 2*labelMarginX) / labelCols
	cellH := (pageH - 2*labelMarginY) / labelRows
	qrSize := math.Min(cellW, cellH) * 0.55
	perPage := labelCols * labelRows

	for i, v := range eligible {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		ix := i % perPage
		col := ix % labelCols
		row := ix / labelCols
		x := labelMarginX + float64(col)*cellW
		y := labelMarginY + float64(row)*cellH

		qrPNG, err := qrcode.Encode(VehicleURL(baseURL, v.VehicleID), qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("qr encode %s: %w", v.VehicleID, err)
		}
		name := "qr-" + v.VehicleID
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(qrPNG))
		pdf.ImageOptions(name, x+3, y+3, qrSize, qrSize, false, opts, 0, "")

		pdf.SetFont(fontName, "", 9)
		pdf.Text(x+3, y+6+qrSize+4, "ID: "+v.VehicleID)
		pdf.Text(x+3, y+6+qrSize+9, "No: "+v.PlateNumber)
		pdf.SetFont(fontName, "", 6)
		pdf.Text(x+3+qrSize+3, y+6, baseURL)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("label sheet: %w", err)
	}
	return pdf, nil
}
