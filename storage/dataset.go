package storage

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"backend/models"
	"backend/utils"
)

// Dataset is one loaded workbook: the roster and the maintenance log.
// Both tables are immutable once loaded; derived views must copy rows
// before rewriting anything.
type Dataset struct {
	Roster      *models.Roster
	Maintenance *models.MaintenanceLog
}

// Candidate headers per roster field. The production workbook uses the
// Korean headers; the snake_case aliases cover re-exported copies.
var (
	idHeaders           = []string{"차량ID", "vehicle_id"}
	plateHeaders        = []string{"차량번호", "plate_number"}
	modelHeaders        = []string{"차종", "model"}
	userHeaders         = []string{"사용자", "user"}
	siteHeaders         = []string{"운용사업장", "site"}
	categoryHeaders     = []string{"차량구분", "category"}
	insurerHeaders      = []string{"보험사", "insurer"}
	insurerPhoneHeaders = []string{"보험사연락처", "insurer_phone"}
	insuranceHeaders    = []string{"보험만료일", "insurance_expiry"}
	inspectionHeaders   = []string{"검사만료일", "inspection_expiry"}
	contractHeaders     = []string{"계약종료일", "contract_expiry"}
	rentHeaders         = []string{"월 렌트료", "월금액", "monthly_rent"}
	odometerHeaders     = []string{"주행거리", "odometer"}

	// Either of the two cost headers may carry maintenance cost; both are
	// formatted when both are present.
	costHeaders = []string{"정비비용", "비용"}
)

// DatasetCache memoizes loaded workbooks per source path. There is no
// file-change detection: a modified workbook at the same path is not
// re-read during a session, which trades staleness for avoiding workbook
// I/O on every query.
type DatasetCache struct {
	mu               sync.Mutex
	rosterSheet      string
	maintenanceSheet string
	entries          map[string]*Dataset
}

func NewDatasetCache(rosterSheet, maintenanceSheet string) *DatasetCache {
	return &DatasetCache{
		rosterSheet:      rosterSheet,
		maintenanceSheet: maintenanceSheet,
		entries:          make(map[string]*Dataset),
	}
}

// GetOrLoad returns the cached dataset for path, loading it on first use.
func (c *DatasetCache) GetOrLoad(path string) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ds, ok := c.entries[path]; ok {
		return ds, nil
	}
	ds, err := LoadDataset(path, c.rosterSheet, c.maintenanceSheet)
	if err != nil {
		return nil, err
	}
	c.entries[path] = ds
	log.Printf("[dataset] loaded %s (%d vehicles, %d maintenance rows)",
		path, len(ds.Roster.Vehicles), len(ds.Maintenance.Rows))
	return ds, nil
}

// LoadDataset reads the roster and maintenance sheets from one workbook.
func LoadDataset(path, rosterSheet, maintenanceSheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("close workbook:", err)
		}
	}()

	rosterRows, err := f.GetRows(rosterSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", rosterSheet, err)
	}
	maintRows, err := f.GetRows(maintenanceSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", maintenanceSheet, err)
	}
	return &Dataset{
		Roster:      rosterFromRows(rosterRows),
		Maintenance: maintenanceFromRows(maintRows),
	}, nil
}

// LoadRoster reads only the roster sheet; the label generator has no use
// for the maintenance log.
func LoadRoster(path, sheet string) (*models.Roster, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("close workbook:", err)
		}
	}()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rosterFromRows(rows), nil
}

func rosterFromRows(rows [][]string) *models.Roster {
	roster := &models.Roster{}
	if len(rows) == 0 {
		return roster
	}
	idx := headerIndex(rows[0])

	id := columnAt(idx, idHeaders)
	plate := columnAt(idx, plateHeaders)
	model := columnAt(idx, modelHeaders)
	user := columnAt(idx, userHeaders)
	site := columnAt(idx, siteHeaders)
	category := columnAt(idx, categoryHeaders)
	insurer := columnAt(idx, insurerHeaders)
	insurerPhone := columnAt(idx, insurerPhoneHeaders)
	insurance := columnAt(idx, insuranceHeaders)
	inspection := columnAt(idx, inspectionHeaders)
	contract := columnAt(idx, contractHeaders)
	rent := columnAt(idx, rentHeaders)
	odometer := columnAt(idx, odometerHeaders)

	for _, row := range rows[1:] {
		rec := models.VehicleRecord{
			VehicleID:        utils.NormalizeText(cell(row, id)),
			PlateNumber:      utils.NormalizeText(cell(row, plate)),
			Model:            utils.NormalizeText(cell(row, model)),
			User:             utils.NormalizeText(cell(row, user)),
			Site:             utils.NormalizeText(cell(row, site)),
			Category:         utils.NormalizeText(cell(row, category)),
			Insurer:          utils.NormalizeText(cell(row, insurer)),
			InsurerPhone:     utils.NormalizeText(cell(row, insurerPhone)),
			InsuranceExpiry:  utils.ParseDate(cell(row, insurance)),
			InspectionExpiry: utils.ParseDate(cell(row, inspection)),
			ContractExpiry:   utils.ParseDate(cell(row, contract)),
			MonthlyRent:      utils.ParseCurrency(cell(row, rent)),
			Odometer:         utils.ParseDistance(cell(row, odometer)),
		}
		if rec.VehicleID == "" && rec.PlateNumber == "" && rec.Model == "" {
			continue
		}
		roster.Vehicles = append(roster.Vehicles, rec)
	}
	return roster
}

func maintenanceFromRows(rows [][]string) *models.MaintenanceLog {
	mlog := &models.MaintenanceLog{}
	if len(rows) == 0 {
		return mlog
	}
	for _, h := range rows[0] {
		mlog.Columns = append(mlog.Columns, utils.NormalizeText(h))
	}
	idx := headerIndex(rows[0])

	mlog.IDColumn = columnName(idx, idHeaders)
	mlog.PlateColumn = columnName(idx, plateHeaders)
	mlog.OdometerColumn = columnName(idx, odometerHeaders)
	for _, cand := range costHeaders {
		if _, ok := idx[cand]; ok {
			mlog.CostColumns = append(mlog.CostColumns, cand)
		}
	}
	// First date-looking column wins; detection is by header shape, not a
	// fixed name.
	for _, h := range mlog.Columns {
		if strings.Contains(h, "일") || strings.Contains(strings.ToLower(h), "date") {
			mlog.DateColumn = h
			break
		}
	}

	for _, row := range rows[1:] {
		fields := make(map[string]string, len(mlog.Columns))
		empty := true
		for j, name := range mlog.Columns {
			if name == "" {
				continue
			}
			if _, seen := fields[name]; seen {
				continue
			}
			v := cell(row, j)
			if name == mlog.IDColumn || name == mlog.PlateColumn {
				v = utils.NormalizeText(v)
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			fields[name] = v
		}
		if empty {
			continue
		}
		mlog.Rows = append(mlog.Rows, models.MaintenanceRecord{Fields: fields})
	}
	return mlog
}

// headerIndex maps trimmed header names to their column position; the first
// occurrence wins on duplicates.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := utils.NormalizeText(h)
		if name == "" {
			continue
		}
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// columnAt resolves the first present candidate header to its position, -1
// when every candidate is absent.
func columnAt(idx map[string]int, candidates []string) int {
	for _, cand := range candidates {
		if i, ok := idx[cand]; ok {
			return i
		}
	}
	return -1
}

// columnName is columnAt but returns the matched header name.
func columnName(idx map[string]int, candidates []string) string {
	for _, cand := range candidates {
		if _, ok := idx[cand]; ok {
			return cand
		}
	}
	return ""
}

// cell reads row[i], tolerating the short rows the workbook reader produces
// when trailing cells are empty.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
