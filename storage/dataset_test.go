package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const (
	testRosterSheet = "법인차량현황"
	testMaintSheet  = "정비현황"
)

// writeFleetWorkbook builds a workbook with the messy cell shapes the
// production export produces: padded headers, padded key cells, mixed
// string/numeric encodings.
func writeFleetWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(testRosterSheet)
	require.NoError(t, err)
	_, err = f.NewSheet(testMaintSheet)
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow(testRosterSheet, "A1", &[]interface{}{
		" 차량ID ", "차량번호", "차종", "사용자", "운용사업장", "차량구분",
		"보험사", "보험사연락처", "보험만료일", "검사만료일", "계약종료일", "월금액", "주행거리",
	}))
	require.NoError(t, f.SetSheetRow(testRosterSheet, "A2", &[]interface{}{
		" DR-CAR-01 ", " 12가3456 ", "쏘렌토", "홍길동", "본사", "법인",
		"현대해상", "02-1234-5678", "2026-01-15", "", "2025-12-01", "350,000원", "45,210 km",
	}))
	require.NoError(t, f.SetSheetRow(testRosterSheet, "A3", &[]interface{}{
		"DR-CAR-02", "34나5678", "아반떼", "", "", "", "", "nan", "", "", "", "", "",
	}))

	require.NoError(t, f.SetSheetRow(testMaintSheet, "A1", &[]interface{}{
		"정비일자", " 차량ID ", "정비내용", "비용", "주행거리",
	}))
	require.NoError(t, f.SetSheetRow(testMaintSheet, "A2", &[]interface{}{
		"2025-06-01", "DR-CAR-01", "엔진오일 교환", "80000", "44,000km",
	}))
	require.NoError(t, f.SetSheetRow(testMaintSheet, "A3", &[]interface{}{
		"2025-08-15", " DR-CAR-01 ", "타이어 교체", "400,000원", "",
	}))
	require.NoError(t, f.SetSheetRow(testMaintSheet, "A4", &[]interface{}{
		"2025-07-01", "DR-CAR-02", "와이퍼 교체", "15000", "",
	}))

	require.NoError(t, f.DeleteSheet("Sheet1"))
	path := filepath.Join(dir, "fleet.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeFleetWorkbook(t, t.TempDir())
	ds, err := LoadDataset(path, testRosterSheet, testMaintSheet)
	require.NoError(t, err)

	require.Len(t, ds.Roster.Vehicles, 2)
	v := ds.Roster.Vehicles[0]
	require.Equal(t, "DR-CAR-01", v.VehicleID, "padded header and cell must normalize away")
	require.Equal(t, "12가3456", v.PlateNumber)
	require.Equal(t, "쏘렌토", v.Model)
	require.Equal(t, "02-1234-5678", v.InsurerPhone)

	require.NotNil(t, v.InsuranceExpiry)
	require.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), *v.InsuranceExpiry)
	require.Nil(t, v.InspectionExpiry)

	require.True(t, v.MonthlyRent.Parsed)
	require.Equal(t, "350,000원", v.MonthlyRent.Display)
	require.True(t, v.Odometer.Parsed)
	require.Equal(t, "45,210km", v.Odometer.Display)

	v2 := ds.Roster.Vehicles[1]
	require.Equal(t, "nan", v2.InsurerPhone, "the literal nan is kept; the tel link layer filters it")
	require.Equal(t, "", v2.Odometer.Display)

	m := ds.Maintenance
	require.Equal(t, "차량ID", m.IDColumn)
	require.Equal(t, "", m.PlateColumn)
	require.Equal(t, "정비일자", m.DateColumn)
	require.Equal(t, []string{"비용"}, m.CostColumns)
	require.Equal(t, "주행거리", m.OdometerColumn)
	require.Len(t, m.Rows, 3)
	require.Equal(t, "DR-CAR-01", m.Rows[1].Get("차량ID"), "key cells are normalized at load time")
}

func TestLoadDatasetMissingSheet(t *testing.T) {
	path := writeFleetWorkbook(t, t.TempDir())
	_, err := LoadDataset(path, testRosterSheet, "없는시트")
	require.Error(t, err)
	require.Contains(t, err.Error(), "없는시트")
}

func TestLoadRosterOnly(t *testing.T) {
	path := writeFleetWorkbook(t, t.TempDir())
	roster, err := LoadRoster(path, testRosterSheet)
	require.NoError(t, err)
	require.Len(t, roster.Vehicles, 2)
}

func TestDatasetCacheMemoizes(t *testing.T) {
	dir := t.TempDir()
	path := writeFleetWorkbook(t, dir)
	cache := NewDatasetCache(testRosterSheet, testMaintSheet)

	first, err := cache.GetOrLoad(path)
	require.NoError(t, err)
	second, err := cache.GetOrLoad(path)
	require.NoError(t, err)
	require.Same(t, first, second)

	// Rewriting the workbook at the same path must NOT be picked up: the
	// cache has no file-change detection, only path identity.
	f := excelize.NewFile()
	_, err = f.NewSheet(testRosterSheet)
	require.NoError(t, err)
	_, err = f.NewSheet(testMaintSheet)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(testRosterSheet, "A1", &[]interface{}{"차량ID"}))
	require.NoError(t, f.SetSheetRow(testRosterSheet, "A2", &[]interface{}{"DR-CAR-99"}))
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	third, err := cache.GetOrLoad(path)
	require.NoError(t, err)
	require.Same(t, first, third)
	require.Len(t, third.Roster.Vehicles, 2)
}
