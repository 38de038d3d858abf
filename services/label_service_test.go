package services

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

func TestVehicleURL(t *testing.T) {
	assert.Equal(t, "https://fleet.example.com?car_id=DR-CAR-01",
		VehicleURL("https://fleet.example.com", "DR-CAR-01"))
	assert.Equal(t, "https://fleet.example.com?car_id=DR+CAR+01",
		VehicleURL("https://fleet.example.com", "DR CAR 01"))
}

func TestVehicleQRPNG(t *testing.T) {
	v := models.VehicleRecord{VehicleID: "DR-CAR-01", PlateNumber: "12가3456"}
	data, err := VehicleQRPNG("https://fleet.example.com", v)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 584, img.Bounds().Dy(), "one ASCII caption line below the code")
}

func TestBuildLabelSheetPagination(t *testing.T) {
	var vehicles []models.VehicleRecord
	for i := 1; i <= 13; i++ {
		vehicles = append(vehicles, models.VehicleRecord{
			VehicleID:   fmt.Sprintf("DR-CAR-%02d", i),
			PlateNumber: fmt.Sprintf("%02d가%04d", i, 1000+i),
		})
	}
	// rows without an identifier get no label
	vehicles = append(vehicles, models.VehicleRecord{PlateNumber: "99허9999"})

	pdf, err := BuildLabelSheet(vehicles, "https://fleet.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 2, pdf.PageCount(), "13 labels at 12 per page")
}

func TestBuildLabelSheetEmptyRoster(t *testing.T) {
	pdf, err := BuildLabelSheet(nil, "https://fleet.example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}
