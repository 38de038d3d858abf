package services

import (
	"sort"
	"strings"
	"time"

	"backend/models"
	"backend/utils"
)

// HasLinkageColumn reports whether the maintenance log can be joined to the
// roster at all. Without an id or plate column the history is undefined, not
// merely empty, and callers surface that explicitly.
func HasLinkageColumn(mlog *models.MaintenanceLog) bool {
	return mlog != nil && (mlog.IDColumn != "" || mlog.PlateColumn != "")
}

// FilterMaintenance selects the maintenance rows for a resolved vehicle and
// returns them newest first. Linkage runs on the id column when it exists,
// else on the plate column, else nothing. Exactly one strategy is applied
// per call: an id column that yields zero matches does NOT fall back to the
// plate column, even when plate linkage would find rows. That mirrors the
// upstream behavior; treat surprising empty histories as a data-quality
// signal, not a bug here.
//
// Rows come back as copies with distance and cost cells rewritten to their
// canonical display; the cached base rows are never mutated.
func FilterMaintenance(mlog *models.MaintenanceLog, vehicle models.VehicleRecord) []models.MaintenanceRecord {
	if mlog == nil || len(mlog.Rows) == 0 {
		return nil
	}

	var matched []models.MaintenanceRecord
	switch {
	case mlog.IDColumn != "":
		want := vehicle.VehicleID
		if want == "" {
			return nil
		}
		for _, r := range mlog.Rows {
			if utils.NormalizeText(r.Get(mlog.IDColumn)) == want {
				matched = append(matched, r.Clone())
			}
		}
	case mlog.PlateColumn != "":
		want := stripSpaces(vehicle.PlateNumber)
		if want == "" {
			return nil
		}
		for _, r := range mlog.Rows {
			if stripSpaces(r.Get(mlog.PlateColumn)) == want {
				matched = append(matched, r.Clone())
			}
		}
	default:
		return nil
	}

	sortByServiceDate(mlog, matched)
	formatValueColumns(mlog, matched)
	return matched
}

// sortByServiceDate orders rows descending by the detected date column.
// Unparseable cells become absent dates and sort after every dated row; the
// stable sort keeps source order among undated rows.
func sortByServiceDate(mlog *models.MaintenanceLog, rows []models.MaintenanceRecord) {
	if mlog.DateColumn == "" {
		return
	}
	dates := make([]*time.Time, len(rows))
	for i, r := range rows {
		dates[i] = utils.ParseDate(r.Get(mlog.DateColumn))
	}
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da, db := dates[order[a]], dates[order[b]]
		if da == nil {
			return false
		}
		if db == nil {
			return true
		}
		return da.After(*db)
	})
	sorted := make([]models.MaintenanceRecord, len(rows))
	for i, idx := range order {
		sorted[i] = rows[idx]
	}
	copy(rows, sorted)
}

// formatValueColumns rewrites odometer and cost cells to their canonical
// display. Both cost column candidates are handled independently since
// either or both may exist.
func formatValueColumns(mlog *models.MaintenanceLog, rows []models.MaintenanceRecord) {
	for i := range rows {
		if mlog.OdometerColumn != "" {
			rows[i].Fields[mlog.OdometerColumn] = utils.ParseDistance(rows[i].Get(mlog.OdometerColumn)).Display
		}
		for _, col := range mlog.CostColumns {
			rows[i].Fields[col] = utils.ParseCurrency(rows[i].Get(col)).Display
		}
	}
}

func stripSpaces(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
}
