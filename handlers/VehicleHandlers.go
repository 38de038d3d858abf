package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"backend/models"
	"backend/services"
	"backend/storage"
	"backend/utils"
)

// selectionCookie remembers the last viewed vehicle across page loads. A
// valid car_id query parameter always wins over it.
const selectionCookie = "car_id_select"

const selectionCookieMaxAge = 30 * 24 * 60 * 60

// Expiry labels shown on the detail view.
const (
	labelInsuranceExpiry  = "보험만료일"
	labelInspectionExpiry = "검사만료일"
	labelContractExpiry   = "계약종료일(렌트)"
)

// User-facing messages.
const (
	msgVehicleNotFound   = "해당 차량ID를 찾지 못했습니다: %s"
	msgNoMaintenance     = "정비 이력이 없습니다."
	msgNoLinkageColumn   = "정비 이력 시트에 차량ID/차량번호 컬럼이 없어 이력을 연결할 수 없습니다."
	msgEmptyCandidateSet = "조회 가능한 차량이 없습니다."
)

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// buildVehicleDetail renders a resolved record for presentation: optional
// fields become "-", expiry dates become D-day descriptions against the
// supplied today, and the insurer phone gets a tel: target unless it is the
// literal "nan" a sloppy export leaves behind.
func buildVehicleDetail(v models.VehicleRecord, today time.Time) models.VehicleDetail {
	d := models.VehicleDetail{
		VehicleID:    v.VehicleID,
		PlateNumber:  dash(v.PlateNumber),
		Model:        dash(v.Model),
		User:         dash(v.User),
		Site:         dash(v.Site),
		Category:     dash(v.Category),
		Insurer:      dash(v.Insurer),
		InsurerPhone: dash(v.InsurerPhone),
		Expiries: []string{
			utils.DescribeExpiry(labelInsuranceExpiry, v.InsuranceExpiry, today),
			utils.DescribeExpiry(labelInspectionExpiry, v.InspectionExpiry, today),
			utils.DescribeExpiry(labelContractExpiry, v.ContractExpiry, today),
		},
		MonthlyRent: dash(v.MonthlyRent.Display),
		Odometer:    dash(v.Odometer.Display),
	}
	if v.InsurerPhone != "" && !strings.EqualFold(v.InsurerPhone, "nan") {
		d.TelLink = utils.TelLink(v.InsurerPhone)
	}
	return d
}

// ListVehicleOptions returns the candidate lists that populate the
// selection UI: distinct ids and plates, sorted ascending.
func ListVehicleOptions(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ids := services.DistinctIDs(ds.Roster)
		plates := services.DistinctPlates(ds.Roster)
		resp := gin.H{"ids": ids, "plates": plates}
		if len(ids) == 0 && len(plates) == 0 {
			resp["warning"] = msgEmptyCandidateSet
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetVehicle resolves a vehicle id to its full profile.
func GetVehicle(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("id")
		v, ok := services.ResolveByID(ds.Roster, id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf(msgVehicleNotFound, utils.NormalizeText(id))})
			return
		}
		c.JSON(http.StatusOK, buildVehicleDetail(v, time.Now()))
	}
}

// GetVehicleByPlate resolves a plate number to its vehicle id and redirects
// to the id route; plate lookup is an indirection, not a second
// materialization path.
func GetVehicleByPlate(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		plate := c.Param("plate")
		v, ok := services.ResolveByPlate(ds.Roster, plate)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf(msgVehicleNotFound, utils.NormalizeText(plate))})
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, "/api/vehicles/"+url.PathEscape(v.VehicleID))
	}
}

// GetVehicleMaintenance returns the time-sorted maintenance history for one
// vehicle. A log with no linkage column at all gets an explicit message
// rather than a silently empty list.
func GetVehicleMaintenance(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		id := c.Param("id")
		v, ok := services.ResolveByID(ds.Roster, id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf(msgVehicleNotFound, utils.NormalizeText(id))})
			return
		}
		if !services.HasLinkageColumn(ds.Maintenance) {
			c.JSON(http.StatusOK, gin.H{"rows": []gin.H{}, "message": msgNoLinkageColumn})
			return
		}
		rows := services.FilterMaintenance(ds.Maintenance, v)
		if len(rows) == 0 {
			c.JSON(http.StatusOK, gin.H{"rows": []gin.H{}, "message": msgNoMaintenance})
			return
		}
		out := make([]map[string]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Fields)
		}
		c.JSON(http.StatusOK, gin.H{"columns": ds.Maintenance.Columns, "rows": out})
	}
}

// VehiclePage renders the lookup page. Selection precedence: a valid
// car_id query parameter beats the remembered cookie, which beats the
// first candidate id. A valid deep link also rewrites the cookie so no
// stale selection survives the navigation.
func VehiclePage(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.String(http.StatusInternalServerError, "데이터를 불러오지 못했습니다: %v", err)
			return
		}

		ids := services.DistinctIDs(ds.Roster)
		plates := services.DistinctPlates(ds.Roster)

		selected := ""
		if qp := utils.NormalizeText(c.Query("car_id")); qp != "" && services.IsValidID(ds.Roster, qp) {
			selected = qp
			c.SetCookie(selectionCookie, selected, selectionCookieMaxAge, "/", "", false, false)
		} else if remembered, err := c.Cookie(selectionCookie); err == nil && services.IsValidID(ds.Roster, remembered) {
			selected = utils.NormalizeText(remembered)
		} else if len(ids) > 0 {
			selected = ids[0]
		}

		data := gin.H{
			"IDs":      ids,
			"Plates":   plates,
			"Selected": selected,
		}
		if len(ids) == 0 && len(plates) == 0 {
			data["Warning"] = msgEmptyCandidateSet
		}

		if selected != "" {
			v, ok := services.ResolveByID(ds.Roster, selected)
			if !ok {
				data["Error"] = fmt.Sprintf(msgVehicleNotFound, selected)
			} else {
				data["Vehicle"] = buildVehicleDetail(v, time.Now())
				if !services.HasLinkageColumn(ds.Maintenance) {
					data["MaintenanceMessage"] = msgNoLinkageColumn
				} else if rows := services.FilterMaintenance(ds.Maintenance, v); len(rows) == 0 {
					data["MaintenanceMessage"] = msgNoMaintenance
				} else {
					data["MaintenanceColumns"] = ds.Maintenance.Columns
					data["MaintenanceRows"] = rows
				}
			}
		}

		c.HTML(http.StatusOK, "vehicle.html", data)
	}
}
