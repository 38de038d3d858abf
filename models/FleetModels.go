package models

import "time"

// Canonical suffixes appended to parsed distance and currency displays.
const (
	DistanceUnit   = "km"
	CurrencySuffix = "원"
)

// Distance is a parsed odometer-style value. Magnitude is the integer
// kilometre count and Display the canonical "12,345km" rendering. When
// Parsed is false the cell was not numeric and Display keeps the trimmed
// original text (empty Display means the cell was absent).
type Distance struct {
	Magnitude int    `json:"magnitude"`
	Display   string `json:"display"`
	Parsed    bool   `json:"parsed"`
}

// Currency is a parsed amount in won, same fallback policy as Distance.
type Currency struct {
	Magnitude int    `json:"magnitude"`
	Display   string `json:"display"`
	Parsed    bool   `json:"parsed"`
}

// VehicleRecord is one roster row mapped onto explicit optional fields.
// VehicleID and PlateNumber are stored whitespace-normalized so downstream
// equality checks never fail on incidental whitespace.
type VehicleRecord struct {
	VehicleID        string
	PlateNumber      string
	Model            string
	User             string
	Site             string
	Category         string
	Insurer          string
	InsurerPhone     string
	InsuranceExpiry  *time.Time
	InspectionExpiry *time.Time
	ContractExpiry   *time.Time
	MonthlyRent      Currency
	Odometer         Distance
}

// Roster is the vehicle profile table, immutable once loaded.
type Roster struct {
	Vehicles []VehicleRecord
}

// MaintenanceRecord is one service-history row. All columns are passed
// through unmodified in Fields; only the key columns are normalized by the
// loader.
type MaintenanceRecord struct {
	Fields map[string]string
}

// Get returns the raw cell under the given (trimmed) column name.
func (r MaintenanceRecord) Get(column string) string {
	return r.Fields[column]
}

// Clone returns a deep copy so derived views can rewrite cells without
// touching the cached base row.
func (r MaintenanceRecord) Clone() MaintenanceRecord {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return MaintenanceRecord{Fields: fields}
}

// MaintenanceLog is the service-history table plus the column names the
// loader detected. An empty column name means the column is absent from the
// sheet.
type MaintenanceLog struct {
	Columns        []string
	IDColumn       string
	PlateColumn    string
	DateColumn     string
	OdometerColumn string
	CostColumns    []string
	Rows           []MaintenanceRecord
}

// VehicleDetail is the presentation shape of a resolved vehicle. Optional
// fields come pre-rendered with "-" placeholders so the page and the JSON
// API stay in sync.
type VehicleDetail struct {
	VehicleID    string   `json:"vehicle_id"`
	PlateNumber  string   `json:"plate_number"`
	Model        string   `json:"model"`
	User         string   `json:"user"`
	Site         string   `json:"site"`
	Category     string   `json:"category"`
	Insurer      string   `json:"insurer"`
	InsurerPhone string   `json:"insurer_phone"`
	TelLink      string   `json:"tel_link,omitempty"`
	Expiries     []string `json:"expiries"`
	MonthlyRent  string   `json:"monthly_rent"`
	Odometer     string   `json:"odometer"`
}
