package services

import (
	"sort"

	"backend/models"
	"backend/utils"
)

// ResolveByID locates the roster record whose normalized vehicle id matches
// the normalized input. Uniqueness of ids is a data-quality invariant, not
// enforced here: the first match wins.
func ResolveByID(roster *models.Roster, id string) (models.VehicleRecord, bool) {
	want := utils.NormalizeText(id)
	if roster == nil || want == "" {
		return models.VehicleRecord{}, false
	}
	for _, v := range roster.Vehicles {
		if v.VehicleID == want {
			return v, true
		}
	}
	return models.VehicleRecord{}, false
}

// ResolveByPlate resolves a plate number to its vehicle id and then
// materializes the record through ResolveByID. Plate lookup is an
// indirection to identifier lookup, not a separate materialization path.
func ResolveByPlate(roster *models.Roster, plate string) (models.VehicleRecord, bool) {
	want := utils.NormalizeText(plate)
	if roster == nil || want == "" {
		return models.VehicleRecord{}, false
	}
	for _, v := range roster.Vehicles {
		if v.PlateNumber == want {
			return ResolveByID(roster, v.VehicleID)
		}
	}
	return models.VehicleRecord{}, false
}

// DistinctIDs returns the deduplicated, ascending-sorted vehicle ids,
// omitting absent values. Output is invariant under row order.
func DistinctIDs(roster *models.Roster) []string {
	return distinctValues(roster, func(v models.VehicleRecord) string { return v.VehicleID })
}

// DistinctPlates is DistinctIDs for plate numbers.
func DistinctPlates(roster *models.Roster) []string {
	return distinctValues(roster, func(v models.VehicleRecord) string { return v.PlateNumber })
}

// IsValidID reports whether an externally supplied identifier normalizes to
// a known vehicle id. Deep-link resolution depends on this membership check.
func IsValidID(roster *models.Roster, id string) bool {
	_, ok := ResolveByID(roster, id)
	return ok
}

func distinctValues(roster *models.Roster, key func(models.VehicleRecord) string) []string {
	if roster == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(roster.Vehicles))
	var out []string
	for _, v := range roster.Vehicles {
		k := key(v)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
