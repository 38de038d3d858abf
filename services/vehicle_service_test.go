package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
	"backend/utils"
)

func testRoster() *models.Roster {
	ins := time.Date(2025, time.September, 11, 0, 0, 0, 0, time.UTC)
	return &models.Roster{Vehicles: []models.VehicleRecord{
		{VehicleID: "DR-CAR-02", PlateNumber: "34나5678"},
		{VehicleID: "DR-CAR-01", PlateNumber: "12가3456", InsuranceExpiry: &ins},
		{VehicleID: "DR-CAR-02", PlateNumber: "34나5678"}, // duplicate row
		{VehicleID: "", PlateNumber: "56다7890"},
	}}
}

func TestResolveByID(t *testing.T) {
	roster := testRoster()

	v, ok := ResolveByID(roster, "DR-CAR-01")
	require.True(t, ok)
	assert.Equal(t, "12가3456", v.PlateNumber)

	v, ok = ResolveByID(roster, "  DR-CAR-01  ")
	require.True(t, ok, "incidental whitespace must not break the lookup")
	assert.Equal(t, "DR-CAR-01", v.VehicleID)

	_, ok = ResolveByID(roster, "DR-CAR-99")
	assert.False(t, ok)
	_, ok = ResolveByID(roster, "   ")
	assert.False(t, ok)
}

func TestResolveByPlateIndirection(t *testing.T) {
	roster := testRoster()

	v, ok := ResolveByPlate(roster, " 12가3456 ")
	require.True(t, ok)
	assert.Equal(t, "DR-CAR-01", v.VehicleID)

	// A plate whose row carries no vehicle id cannot be materialized:
	// plate lookup only resolves to an id, never to a record directly.
	_, ok = ResolveByPlate(roster, "56다7890")
	assert.False(t, ok)

	_, ok = ResolveByPlate(roster, "99허9999")
	assert.False(t, ok)
}

func TestDistinctCandidates(t *testing.T) {
	roster := testRoster()

	assert.Equal(t, []string{"DR-CAR-01", "DR-CAR-02"}, DistinctIDs(roster))
	assert.Equal(t, []string{"12가3456", "34나5678", "56다7890"}, DistinctPlates(roster))

	// Invariant under row-order permutation.
	reversed := &models.Roster{}
	for i := len(roster.Vehicles) - 1; i >= 0; i-- {
		reversed.Vehicles = append(reversed.Vehicles, roster.Vehicles[i])
	}
	assert.Equal(t, DistinctIDs(roster), DistinctIDs(reversed))
	assert.Equal(t, DistinctPlates(roster), DistinctPlates(reversed))
}

func TestDistinctCandidatesEmpty(t *testing.T) {
	assert.Empty(t, DistinctIDs(&models.Roster{}))
	assert.Empty(t, DistinctIDs(nil))
}

func TestIsValidID(t *testing.T) {
	roster := testRoster()
	assert.True(t, IsValidID(roster, "DR-CAR-01"))
	assert.True(t, IsValidID(roster, " DR-CAR-02 "))
	assert.False(t, IsValidID(roster, "DR-CAR-99"))
	assert.False(t, IsValidID(roster, ""))
}

// Plate query to expiry description, the full read path of a QR scan.
func TestPlateLookupToExpiry(t *testing.T) {
	roster := testRoster()
	today := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	v, ok := ResolveByPlate(roster, "12가3456")
	require.True(t, ok)
	require.Equal(t, "DR-CAR-01", v.VehicleID)
	assert.Equal(t, "보험만료일: 2025-09-11 (D-10)",
		utils.DescribeExpiry("보험만료일", v.InsuranceExpiry, today))
}
