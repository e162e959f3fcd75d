package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careerprep/middleware"
	"careerprep/models"
	"careerprep/services"
)

type ResumeInput struct {
	ResumeText string `json:"resumeText"`
}

// AnalyzeResume produces feedback for a resume. The daily credit is
// consumed atomically with the limit check, then the check record is
// persisted before the response goes out.
func (h *Handler) AnalyzeResume(c *gin.Context) {
	var input ResumeInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.ResumeText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resumeText is required"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	dayStart := services.DayStart(h.now())

	consumed, used, err := h.store.ConsumeUsage(user.ID, models.UsageResume, dayStart, services.ResumeDailyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !consumed {
		quotaExceeded(c, &services.QuotaExceededError{Limit: services.ResumeDailyLimit, Used: used})
		return
	}

	analysis := h.analyzer(input.ResumeText)

	raw, err := json.Marshal(analysis)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode analysis"})
		return
	}

	if _, err := h.store.CreateResumeCheck(user.ID, input.ResumeText, string(raw)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"message":  "Resume analyzed successfully",
	})
}
