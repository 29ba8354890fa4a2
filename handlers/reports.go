package handlers

import (
	"net/http"

	"homefood-api/models"

	"github.com/gin-gonic/gin"
)

// GenerateReport computes the windowed sale report. If the store is down
// the last good report is served with "stale": true plus a warning.
func GenerateReport(c *gin.Context) {
	period := models.ReportPeriod(c.DefaultQuery("period", "today"))

	report, err := Reports.Generate(c.Request.Context(), period)
	if err != nil {
		if report.Stale {
			c.JSON(http.StatusOK, gin.H{
				"report":  report,
				"warning": "showing last computed report; refresh failed",
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// TodaySummary backs the dashboard header and pie chart. A stale summary is
// still served so the dashboard never loses its numbers.
func TodaySummary(c *gin.Context) {
	summary, err := Reports.TodaySummary(c.Request.Context())
	if err != nil {
		if summary.Stale {
			c.JSON(http.StatusOK, summary)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
