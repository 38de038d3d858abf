package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/services"
	"backend/storage"
	"backend/utils"
)

// GenerateVehicleQR serves the deep-link QR for one vehicle as a PNG with
// the identifier captioned underneath. The same image is what the offline
// generator writes to disk.
func GenerateVehicleQR(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
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
		img, err := services.VehicleQRPNG(cfg.BaseURL, v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "QR code generation failed"})
			return
		}
		c.Data(http.StatusOK, "image/png", img)
	}
}
