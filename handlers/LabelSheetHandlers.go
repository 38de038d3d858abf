package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/services"
	"backend/storage"
)

// GenerateLabelSheet streams the printable A4 label sheet (3x4 QR labels
// per page, one label per roster row with an identifier) as a PDF
// attachment.
func GenerateLabelSheet(cache *storage.DatasetCache, cfg storage.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ds, err := cache.GetOrLoad(cfg.XLSXPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		pdf, err := services.BuildLabelSheet(ds.Roster.Vehicles, cfg.BaseURL, cfg.LabelFontPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		// Render into memory first: once bytes hit the client the status is
		// committed and a JSON error would only corrupt the document.
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=vehicle_labels.pdf")
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
